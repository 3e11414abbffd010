package pacman

import (
	"github.com/Morganamilo/go-srcinfo"
	"github.com/pkg/errors"
)

// ParseSrcinfo parses captured SRCINFO text into its structured form
func ParseSrcinfo(data []byte) (*srcinfo.Srcinfo, error) {
	si, err := srcinfo.Parse(string(data))
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse SRCINFO")
	}
	return si, nil
}

// SrcinfoPackageNames lists the logical packages described by a recipe,
// covering split recipes that build several installable packages
func SrcinfoPackageNames(si *srcinfo.Srcinfo) []string {
	names := make([]string, len(si.Packages))
	for i := range si.Packages {
		names[i] = si.Packages[i].Pkgname
	}
	return names
}

// SrcinfoAttributes builds the source-side attribute mapping for one package
// of a recipe, with per-package overrides merged over the recipe base.
//
// Version components (pkgver, pkgrel, epoch) stay separate; the reconciler
// reassembles the composite when comparing against the repository side.
func SrcinfoAttributes(si *srcinfo.Srcinfo, name string) (Attributes, error) {
	pkg, err := si.SplitPackage(name)
	if err != nil {
		return nil, errors.Wrapf(err, "package %s not described by recipe %s", name, si.Pkgbase)
	}

	return Attributes{
		"pkgname":      pkg.Pkgname,
		"pkgbase":      si.Pkgbase,
		"pkgver":       si.Pkgver,
		"pkgrel":       si.Pkgrel,
		"epoch":        si.Epoch,
		"pkgdesc":      pkg.Pkgdesc,
		"url":          pkg.URL,
		"arch":         append([]string{}, pkg.Arch...),
		"license":      append([]string{}, pkg.License...),
		"groups":       append([]string{}, pkg.Groups...),
		"depends":      archStringValues(pkg.Depends),
		"optdepends":   archStringValues(pkg.OptDepends),
		"makedepends":  archStringValues(si.MakeDepends),
		"checkdepends": archStringValues(si.CheckDepends),
		"provides":     archStringValues(pkg.Provides),
		"conflicts":    archStringValues(pkg.Conflicts),
		"replaces":     archStringValues(pkg.Replaces),
	}, nil
}

// ConstructVersion reassembles the composite package version the repository
// stores as a single string
func ConstructVersion(pkgver, pkgrel, epoch string) string {
	if epoch != "" {
		return epoch + ":" + pkgver + "-" + pkgrel
	}
	return pkgver + "-" + pkgrel
}

func archStringValues(list []srcinfo.ArchString) []string {
	values := make([]string, len(list))
	for i := range list {
		values[i] = list[i].Value
	}
	return values
}
