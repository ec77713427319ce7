package activities

// Activity is one recorded farming action on a field. Date stays a string:
// it is relayed between client and storage without interpretation.
type Activity struct {
	UserID    int64  `json:"user_ID"`
	FieldName string `json:"field_name"`
	Activity  string `json:"activity"`
	Date      string `json:"date"`
}
