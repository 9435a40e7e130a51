package markup

import "encoding/json"

// jsonDoc mirrors the field order/names mandated by the wire-format
// contract (source, source-hostname, title, ...). Go's encoding/json emits
// struct fields in declaration order, so the output follows this order;
// only the field names are normative.
type jsonDoc struct {
	Source         string   `json:"source"`
	SourceHostname string   `json:"source-hostname"`
	Title          string   `json:"title"`
	Author         string   `json:"author,omitempty"`
	Date           string   `json:"date,omitempty"`
	Description    string   `json:"description,omitempty"`
	Categories     []string `json:"categories,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Fingerprint    string   `json:"fingerprint,omitempty"`
	ID             string   `json:"id,omitempty"`
	License        string   `json:"license,omitempty"`
	Language       string   `json:"language,omitempty"`
	Image          string   `json:"image,omitempty"`
	Pagetype       string   `json:"pagetype,omitempty"`
	Text           string   `json:"text"`
	Comments       string   `json:"comments,omitempty"`
}

// ToJSON renders the document metadata plus rendered body/comments text as
// a JSON object (§4.12 json format, §6 wire format).
func ToJSON(body, comments *Node, meta Meta) (string, error) {
	d := jsonDoc{
		Source:         meta.URL,
		SourceHostname: meta.Hostname,
		Title:          meta.Title,
		Author:         meta.Author,
		Date:           meta.Date,
		Description:    meta.Description,
		Categories:     meta.Categories,
		Tags:           meta.Tags,
		Fingerprint:    meta.Fingerprint,
		ID:             meta.ID,
		License:        meta.License,
		Language:       meta.Language,
		Image:          meta.Image,
		Pagetype:       meta.Pagetype,
		Text:           ToTXT(body),
	}
	if comments != nil {
		d.Comments = ToTXT(comments)
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
