package compose

import (
	"bytes"
	"html/template"
)

// documentTemplate lays every cropped frame out in a single vertical
// column, title as a heading above. Image sources are relative so the
// document renders from its workspace directory.
var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
</head>
<body>
    <h1 style="text-align: center">{{.Title}}</h1>
    <div style="display: flex; flex-direction: column; justify-content: center">
        {{range .Images}}<img src="{{.}}" style="width: 100%"/>
        {{end}}
    </div>
</body>
</html>
`))

type documentData struct {
	Title  string
	Images []string
}

// BuildHTML renders the document markup for the given title and image
// filenames, which must already be in ascending timestamp order.
func BuildHTML(title string, images []string) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, documentData{Title: title, Images: images}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
