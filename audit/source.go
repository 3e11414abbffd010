package audit

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	srcinfo "github.com/Morganamilo/go-srcinfo"
	shellwords "github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"github.com/saracen/walker"

	"github.com/repoaudit-dev/repoaudit/pacman"
)

// SrcinfoSource re-derives authoritative package metadata by invoking an
// external command once per package. The command receives a single
// positional argument, repository/name, and runs with the recipe root as
// working directory; whatever it prints on stdout is parsed as SRCINFO.
type SrcinfoSource struct {
	// Command line to invoke, e.g. "makepkg --printsrcinfo"
	Command string
	// Repository name, first component of the command argument
	Repository string
	// RecipeRoot is the directory the per-package recipe tree lives under
	RecipeRoot string
}

// RecipePath returns the path of the build recipe for name
func (s *SrcinfoSource) RecipePath(name string) string {
	return filepath.Join(s.RecipeRoot, s.Repository, name, "PKGBUILD")
}

// HasRecipe reports whether a build recipe for name is readable on disk.
// Packages without one are excluded from the audit entirely, they are not
// mismatches.
func (s *SrcinfoSource) HasRecipe(name string) bool {
	f, err := os.Open(s.RecipePath(name))
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// ReadSrcinfo invokes the metadata command for name and parses the captured
// output. The call blocks until the command exits; there is no retry.
func (s *SrcinfoSource) ReadSrcinfo(ctx context.Context, name string) (*srcinfo.Srcinfo, error) {
	args, err := shellwords.Parse(s.Command)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid srcinfo command %q", s.Command)
	}
	if len(args) == 0 {
		return nil, errors.New("empty srcinfo command")
	}
	args = append(args, path.Join(s.Repository, name))

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = s.RecipeRoot
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err = cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "srcinfo command failed for %s: %s", name, strings.TrimSpace(stderr.String()))
	}

	return pacman.ParseSrcinfo(stdout.Bytes())
}

// CollectPackages walks the repository's recipe tree and returns the name
// of every directory carrying a PKGBUILD, sorted
func (s *SrcinfoSource) CollectPackages() ([]string, error) {
	root := filepath.Join(s.RecipeRoot, s.Repository)

	namesLock := &sync.Mutex{}
	var names []string

	err := walker.Walk(root, func(path string, info os.FileInfo) error {
		if info.IsDir() || info.Name() != "PKGBUILD" {
			return nil
		}

		rel, err2 := filepath.Rel(root, path)
		if err2 != nil {
			return err2
		}

		if dir := filepath.Dir(rel); dir != "." && !strings.Contains(dir, string(filepath.Separator)) {
			namesLock.Lock()
			defer namesLock.Unlock()
			names = append(names, dir)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to scan recipes under %s", root)
	}

	sort.Strings(names)

	return names, nil
}
