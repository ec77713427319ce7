package users

// Credential is a row of the lookup table as seen by the auth flows. The
// Password column historically holds either a plaintext value (legacy hash
// mode) or a bcrypt hash; this layer does not interpret it.
type Credential struct {
	Email    string
	Password string
	UserID   int64
}
