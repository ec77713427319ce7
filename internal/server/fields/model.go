package fields

// Field is one registered field of a user. The JSON names follow the
// columns the mobile client has always consumed.
type Field struct {
	FID       int64  `json:"FID"`
	FieldName string `json:"field_name"`
}
