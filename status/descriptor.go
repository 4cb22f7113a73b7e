package status

// Canonical codes backing the descriptor flags.
const (
	CodeOK          = 200
	CodeCreated     = 201
	CodeBadRequest  = 400
	CodeForbidden   = 403
	CodeNotFound    = 404
	CodeServerError = 500
)

// Descriptor is the normalized status attached to a response.
type Descriptor struct {
	Code          int    `json:"code" yaml:"code"`
	Definition    string `json:"definition,omitempty" yaml:"definition,omitempty"`
	IsOK          bool   `json:"isOk" yaml:"isOk"`
	IsCreated     bool   `json:"isCreated" yaml:"isCreated"`
	IsBadRequest  bool   `json:"isBadRequest" yaml:"isBadRequest"`
	IsForbidden   bool   `json:"isForbidden" yaml:"isForbidden"`
	IsNotFound    bool   `json:"isNotFound" yaml:"isNotFound"`
	IsServerError bool   `json:"isServerError" yaml:"isServerError"`
}

// Describe builds the descriptor for code. It never fails; unknown codes
// simply carry an empty Definition.
func Describe(code int) Descriptor {
	def, _ := Lookup(code)
	return Descriptor{
		Code:          code,
		Definition:    def,
		IsOK:          code == CodeOK,
		IsCreated:     code == CodeCreated,
		IsBadRequest:  code == CodeBadRequest,
		IsForbidden:   code == CodeForbidden,
		IsNotFound:    code == CodeNotFound,
		IsServerError: code == CodeServerError,
	}
}

// Known reports whether the code has an entry in the table.
func (d Descriptor) Known() bool {
	_, ok := Lookup(d.Code)
	return ok
}

// Class returns the leading digit class of the code, e.g. "2xx".
// Codes outside 100-599 report "unknown".
func (d Descriptor) Class() string {
	if d.Code < 100 || d.Code > 599 {
		return "unknown"
	}
	return string(rune('0'+d.Code/100)) + "xx"
}
