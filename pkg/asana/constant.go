package asana

const (
	DefaultBaseURL = "https://app.asana.com/api/1.0"

	// enableHeader opts into string gids, rich text and sections.
	enableHeader = "asana-enable"
	enableValue  = "string_ids,new_rich_text,new_sections"

	contentTypeJSON = "application/json"
)
