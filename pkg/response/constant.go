package response

const (
	MessageSuccess = "Success"

	DateTimeFormat = "2006-01-02 15:04:05"
)
