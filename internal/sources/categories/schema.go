package categories

// File represents the category YAML document:
//
//	categories:
//	  - Financial
//	  - Projects
type File struct {
	Categories []string `yaml:"categories"`
}
