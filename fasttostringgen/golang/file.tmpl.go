package golang

const fileTmpl = `
{{- define "File" -}}
{{ .Header }}

package {{ .Package }}

import {{ if ne .Alias "fasttostring" }}{{ .Alias }} {{ end }}"{{ .RuntimeImport }}"

// This check fails to compile if the file was generated by a version of
// fasttostring the linked runtime no longer supports.
const (
	_ = {{ .Alias }}.EnforceVersion({{ .GenVersion }} - {{ .Alias }}.MinVersion)
	_ = {{ .Alias }}.EnforceVersion({{ .Alias }}.MaxVersion - {{ .GenVersion }})
)
{{ range .Enums }}
{{ template "Enum" . }}
{{ end }}
{{- end -}}

{{- define "Enum" -}}
// {{ .Method }} returns the name of the {{ .Type }} constant equal to {{ .Recv }}.
// Any other {{ .Underlying }} value yields an error wrapping {{ .Alias }}.ErrOutOfRange.
{{- range .Aliases }}
// {{ .Name }} has the same value as {{ .Target }} and is reported as {{ printf "%q" .Target }}.
{{- end }}
func ({{ .Recv }} {{ .Type }}) {{ .Method }}() (string, error) {
	switch {{ .Recv }} {
	{{- range .Members }}
	case {{ .Name }}:{{ with .Doc }} // {{ . }}{{ end }}
		return {{ printf "%q" .Name }}, nil
	{{- end }}
	}
	return "", {{ .Alias }}.OutOfRange({{ printf "%q" .Qualified }}, {{ printf "%q" .Recv }}, {{ .Recv }})
}
{{- end -}}
`
