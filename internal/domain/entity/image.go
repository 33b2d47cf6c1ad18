package entity

// Image imagen de producto. URL viene del API; FileBase64 y MimeType sólo se llenan
// al armar una carga y nunca se leen de vuelta de los listados.
type Image struct {
	UID        string `json:"uid,omitempty"`
	URL        string `json:"url,omitempty"`
	Title      string `json:"title,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
	FileBase64 string `json:"fileBase64,omitempty"`
}

// IsEmpty no hay ni URL ni contenido pendiente de subir.
func (i Image) IsEmpty() bool {
	return i.URL == "" && i.FileBase64 == ""
}

// Src valor para el atributo src: la URL remota o un data URL del contenido preparado.
func (i Image) Src() string {
	if i.FileBase64 != "" {
		mime := i.MimeType
		if mime == "" {
			mime = "application/octet-stream"
		}
		return "data:" + mime + ";base64," + i.FileBase64
	}
	return i.URL
}
