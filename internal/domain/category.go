package domain

// DefaultCategories is the fixed enumeration offered by the filter and upload selectors.
var DefaultCategories = []string{
	"Financial",
	"Projects",
	"Safety",
	"Green Energy",
	"Environment",
	"HR",
	"Technology",
	"CSR",
	"Operations",
	"Research",
	"Corporate Governance",
	"Sustainability",
}

// Categories is an ordered category enumeration.
type Categories []string

// Contains reports an exact, case-sensitive match.
func (c Categories) Contains(name string) bool {
	for _, cat := range c {
		if cat == name {
			return true
		}
	}
	return false
}
