package export

import (
	"bytes"
	"html/template"
)

// wordTemplate wraps document content in the vendor-namespaced HTML
// that Word opens natively. Both the .docx and .doc formats use this
// envelope; Word does the conversion on open.
const wordTemplate = `<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns='http://www.w3.org/TR/REC-html40'>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<!--[if gte mso 9]>
<xml>
<w:WordDocument>
<w:View>Print</w:View>
<w:Zoom>100</w:Zoom>
</w:WordDocument>
</xml>
<![endif]-->
<style>
@page {
  size: 8.5in 11in;
  margin: 1in;
}
body {
  font-family: "{{.Font}}", serif;
  font-size: {{.FontSize}}pt;
  line-height: {{.LineHeight}};
}
table {
  border-collapse: collapse;
  width: 100%;
}
table, th, td {
  border: 1px solid #000;
}
td {
  padding: 6pt;
}
</style>
</head>
<body>
{{.ContentHTML | safeHTML}}
</body>
</html>`

var wordTmpl = template.Must(
	template.New("word").Funcs(template.FuncMap{"safeHTML": SafeHTML}).Parse(wordTemplate),
)

// BuildWordHTML renders document content as Word-compatible HTML.
func BuildWordHTML(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := wordTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
