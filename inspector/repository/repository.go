package repository

// Repository represents version controlled project location
type Repository struct {
	Kind    string   `yaml:"kind"`
	Root    string   `yaml:"root"`
	Origin  string   `yaml:"origin,omitempty"`
	Project *Project `yaml:"project,omitempty"`
}

// Project represents information about a detected PHP project
type Project struct {
	RootPath     string `yaml:"rootPath"`               // Absolute path to the project root directory
	Type         string `yaml:"type"`                   // php when composer.json was found, git for bare repositories
	Name         string `yaml:"name,omitempty"`         // composer package name or root directory name
	RelativePath string `yaml:"relativePath,omitempty"` // Path from project root to the specified file
}

// Composer represents the composer.json fields used for project detection
type Composer struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
