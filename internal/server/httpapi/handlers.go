// Package httpapi exposes the service over HTTP. Every handler is thin:
// validate input, one round-trip to a collaborator, map the outcome to a
// status code. The first error short-circuits the request; no retries.
package httpapi

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spirocarbon/farmrecord/internal/common"
	"github.com/spirocarbon/farmrecord/internal/logging"
	"github.com/spirocarbon/farmrecord/internal/server/activities"
	"github.com/spirocarbon/farmrecord/internal/server/fields"
	"github.com/spirocarbon/farmrecord/internal/server/mail"
	"github.com/spirocarbon/farmrecord/internal/server/otp"
	"github.com/spirocarbon/farmrecord/internal/server/storage"
	"github.com/spirocarbon/farmrecord/internal/server/submissions"
	"github.com/spirocarbon/farmrecord/internal/server/users"
)

type Handler struct {
	users       *users.Service
	fields      fields.Repository
	activities  activities.Repository
	submissions submissions.Repository
	otps        *otp.Registry
	mailer      mail.Sender
	store       storage.ObjectStore
	otpLength   int
	log         logging.Logger
}

func NewHandler(
	userService *users.Service,
	fieldRepo fields.Repository,
	activityRepo activities.Repository,
	submissionRepo submissions.Repository,
	otps *otp.Registry,
	mailer mail.Sender,
	store storage.ObjectStore,
	otpLength int,
	log logging.Logger,
) *Handler {
	return &Handler{
		users:       userService,
		fields:      fieldRepo,
		activities:  activityRepo,
		submissions: submissionRepo,
		otps:        otps,
		mailer:      mailer,
		store:       store,
		otpLength:   otpLength,
		log:         log,
	}
}

func respondError(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

// GET /
func (h *Handler) Root(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString("<h1>Hello world!</h1>")
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /login
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	res, err := h.users.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return respondError(c, fiber.StatusForbidden, "User not found!")
		case errors.Is(err, users.ErrWrongPassword):
			return respondError(c, fiber.StatusForbidden, "Password is incorrect!")
		default:
			h.log.Error(c.Context(), "login failed", "error", err)
			return respondError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(fiber.Map{"userID": res.UserID, "accessToken": res.AccessToken})
}

type sendOTPReq struct {
	Email string `json:"email"`
}

// POST /send-otp
//
// The code is recorded only after the mail provider confirms delivery; a
// send failure leaves the registry untouched and is reported as 424,
// distinct from the 403 unknown-email outcome.
func (h *Handler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	exists, err := h.users.EmailExists(c.Context(), req.Email)
	if err != nil {
		h.log.Error(c.Context(), "otp email lookup failed", "error", err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !exists {
		return respondError(c, fiber.StatusForbidden, "User not found!")
	}

	code := otp.GenerateCode(h.otpLength)

	if err := h.mailer.SendOTP(c.Context(), req.Email, code); err != nil {
		h.log.Error(c.Context(), "otp delivery failed", "email", req.Email, "error", err)
		return c.Status(fiber.StatusFailedDependency).JSON(fiber.Map{
			"status": "failed",
			"error":  "Email sending error!",
		})
	}

	h.otps.Add(code, req.Email)
	return c.JSON(fiber.Map{"status": "success"})
}

type verifyOTPReq struct {
	OTP   string `json:"otp"`
	Email string `json:"email"`
}

// POST /verify-otp
//
// Always answers 200; the body carries the verdict. A stale match reads
// the same as no match to the caller.
func (h *Handler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPReq
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(fiber.Map{"verify": false})
	}

	res := h.otps.Verify(req.OTP, req.Email)
	return c.JSON(fiber.Map{"verify": res.Match && res.Fresh})
}

type changePasswordReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /change-password
func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := h.users.ChangePassword(c.Context(), req.Email, req.Password); err != nil {
		h.log.Error(c.Context(), "password change failed", "error", err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"status": "success"})
}

type fieldsReq struct {
	UserID int64 `json:"userID"`
}

// POST /fields (bearer token)
func (h *Handler) Fields(c *fiber.Ctx) error {
	var req fieldsReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	result, err := h.fields.ListByUser(c.Context(), req.UserID)
	if err != nil {
		h.log.Error(c.Context(), "field lookup failed", "error", err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	if len(result) == 0 {
		return respondError(c, fiber.StatusNotFound, "No Data Found!")
	}

	return c.JSON(fiber.Map{"result": result})
}

type addActivityReq struct {
	UserID    int64  `json:"userID"`
	Activity  string `json:"activity"`
	Date      string `json:"date"`
	FieldName string `json:"fieldName"`
}

// POST /add-activity
func (h *Handler) AddActivity(c *fiber.Ctx) error {
	var req addActivityReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	a := &activities.Activity{
		UserID:    req.UserID,
		FieldName: req.FieldName,
		Activity:  req.Activity,
		Date:      req.Date,
	}
	if err := h.activities.Add(c.Context(), a); err != nil {
		h.log.Error(c.Context(), "activity insert failed", "error", err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"status": "Success"})
}

type activitiesReq struct {
	UserID int64 `json:"userID"`
}

// POST /activities
func (h *Handler) Activities(c *fiber.Ctx) error {
	var req activitiesReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	result, err := h.activities.ListByUser(c.Context(), req.UserID)
	if err != nil {
		h.log.Error(c.Context(), "activity lookup failed", "error", err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	if result == nil {
		result = []activities.Activity{}
	}
	return c.JSON(fiber.Map{"result": result})
}

type checkSubmissionReq struct {
	UserID    int64  `json:"userID"`
	FieldName string `json:"fieldName"`
}

// POST /check-submission
func (h *Handler) CheckSubmission(c *fiber.Ctx) error {
	var req checkSubmissionReq
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	submitted, err := h.submissions.SubmittedWithin24h(c.Context(), req.UserID, req.FieldName)
	if err != nil {
		h.log.Error(c.Context(), "submission check failed", "error", err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"submitted": submitted})
}

// POST /upload
//
// A missing image part is a client error (400), kept distinct from a
// storage-backend failure (500). The object key is the original filename;
// the submission row is written only after the object landed.
func (h *Handler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "No image file found!")
	}

	uid, err := strconv.ParseInt(c.FormValue("uid"), 10, 64)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid uid!")
	}
	fieldName := c.FormValue("fieldname")

	f, err := fileHeader.Open()
	if err != nil {
		h.log.Error(c.Context(), "upload open failed", "file", fileHeader.Filename, "error", err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}
	defer f.Close()

	h.log.Info(c.Context(), "starting upload", "file", fileHeader.Filename, "uid", uid)

	if err := h.store.Put(c.Context(), fileHeader.Filename, f); err != nil {
		h.log.Error(c.Context(), "upload to storage failed", "file", fileHeader.Filename, "error", err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := h.submissions.Add(c.Context(), uid, fieldName); err != nil {
		h.log.Error(c.Context(), "submission insert failed", "error", err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	h.log.Info(c.Context(), "upload complete", "file", fileHeader.Filename)
	return c.JSON(fiber.Map{"status": "Success"})
}

// GET /validateToken (bearer token)
func (h *Handler) ValidateToken(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "success"})
}
