package markup

// Meta carries the metadata fields every serializer needs. It mirrors the
// public Document's metadata fields without importing the root package,
// which would create an import cycle (the root package needs the
// serializers).
type Meta struct {
	Title       string
	Author      string
	URL         string
	Hostname    string
	Description string
	Sitename    string
	Date        string
	Categories  []string
	Tags        []string
	Fingerprint string
	ID          string
	License     string
	Language    string
	Image       string
	Pagetype    string
	Filedate    string
}
