package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fatih/color"
)

// Bot API tokens look like "<8-10 digit bot id>:<35 char secret>".
var reToken = regexp.MustCompile(`\b\d{8,10}:[A-Za-z0-9_-]{35}(?:[^A-Za-z0-9_-]|$)`)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"_examples":    true,
}

var skipExt = map[string]bool{
	".db":  true,
	".exe": true,
	".png": true,
	".jpg": true,
	".sum": true,
}

type finding struct {
	Path string
	Line int
}

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	fmt.Println("🛡️  Scanning for hardcoded bot tokens...")

	findings, err := scan(os.DirFS(root))
	if err != nil {
		color.Red("scan failed: %v", err)
		os.Exit(2)
	}

	for _, f := range findings {
		color.Red("❌ [Secret] bot token in %s:%d", filepath.Join(root, f.Path), f.Line)
	}

	if len(findings) > 0 {
		color.Red("\n🚫 %d hardcoded token(s) found. Use TELEGRAM_TOKEN or `demobot token set`.", len(findings))
		os.Exit(1)
	}

	color.Green("✅ No hardcoded tokens found")
}

func scan(fsys fs.FS) ([]finding, error) {
	var findings []finding
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != "." && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return fs.SkipDir
			}
			return nil
		}
		if skipExt[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		for i, line := range strings.Split(string(content), "\n") {
			if reToken.MatchString(line) {
				findings = append(findings, finding{Path: path, Line: i + 1})
			}
		}
		return nil
	})
	return findings, err
}
