package repository

import (
	"bufio"
	"github.com/goccy/go-json"
	"os"
	"path/filepath"
	"strings"
)

// ComposerFile is the PHP project marker
const ComposerFile = "composer.json"

// Detector identifies project root folders and provides project-related information
type Detector struct {
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			ComposerFile, // PHP projects
			".git",       // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)
	info := &Project{
		Type:     "unknown",
		RootPath: startDir,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}
	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name = d.extractProjectName(info.RootPath, info.Type)
	return info, nil
}

// DetectRepository identifies the repository containing the given file path
func (d *Detector) DetectRepository(filePath string) (*Repository, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	project, err := d.DetectProject(filePath)
	if err != nil {
		return nil, err
	}
	if gitRoot := d.findGitRoot(startDir); gitRoot != "" {
		return &Repository{
			Kind:    "git",
			Root:    gitRoot,
			Origin:  d.extractGitOrigin(gitRoot),
			Project: project,
		}, nil
	}
	return &Repository{
		Kind:    project.Type,
		Root:    project.RootPath,
		Project: project,
	}, nil
}

// Composer reads composer.json from project root
func (d *Detector) Composer(rootPath string) (*Composer, error) {
	data, err := os.ReadFile(filepath.Join(rootPath, ComposerFile))
	if err != nil {
		return nil, err
	}
	ret := &Composer{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == homeDir {
			break
		}
		dir = parent
	}
	return ""
}

// extractGitOrigin extracts the origin URL from git config
func (d *Detector) extractGitOrigin(gitRoot string) string {
	file, err := os.Open(filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "[remote \"origin\"]") {
			foundRemote = true
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

// extractProjectName returns composer package name, falls back to the root directory name
func (d *Detector) extractProjectName(rootPath string, projectType string) string {
	if projectType == "php" {
		if composer, err := d.Composer(rootPath); err == nil && composer.Name != "" {
			return composer.Name
		}
	}
	return filepath.Base(rootPath)
}

func determineProjectType(marker string) string {
	switch marker {
	case ComposerFile:
		return "php"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
