package pacman

import (
	"encoding/json"

	. "gopkg.in/check.v1"
)

type ReconcileSuite struct {
	source Attributes
}

var _ = Suite(&ReconcileSuite{})

func (s *ReconcileSuite) SetUpTest(c *C) {
	s.source = Attributes{
		"pkgname": "zlib",
		"pkgver":  "1.3.1",
		"pkgrel":  "2",
		"epoch":   "",
		"url":     "https://www.zlib.net/",
		"license": []string{"custom"},
		"depends": []string{"glibc"},
	}
}

func (s *ReconcileSuite) TestReflexive(c *C) {
	repo := Attributes{"pkgname": "zlib", "depends": []string{"glibc"}, "url": "https://www.zlib.net/"}

	diffs, count := Reconcile(repo, repo, "zlib")
	c.Check(count, Equals, 0)
	c.Check(diffs, HasLen, 0)
}

func (s *ReconcileSuite) TestMissingPkgnamePanics(c *C) {
	c.Check(func() { Reconcile(Attributes{}, Attributes{}, "zlib") },
		PanicMatches, "source record for zlib carries no pkgname")
}

func (s *ReconcileSuite) TestAttributeOnlyInRepo(c *C) {
	diffs, count := Reconcile(Attributes{"groups": []string{"base"}}, s.source, "zlib")
	c.Assert(count, Equals, 1)
	c.Check(diffs[0], DeepEquals, FieldDiff{"zlib", "groups", []string{"base"}, nil})
}

func (s *ReconcileSuite) TestAbsentSentinel(c *C) {
	// literal None against a real source value is a mismatch
	_, count := Reconcile(Attributes{"url": AbsentValue}, s.source, "zlib")
	c.Check(count, Equals, 1)

	// literal None against an empty source value is absence on both sides
	source := s.source.Copy()
	source["url"] = ""
	_, count = Reconcile(Attributes{"url": AbsentValue}, source, "zlib")
	c.Check(count, Equals, 0)

	source["license"] = []string{}
	_, count = Reconcile(Attributes{"license": AbsentValue}, source, "zlib")
	c.Check(count, Equals, 0)
}

func (s *ReconcileSuite) TestVersionReconstruction(c *C) {
	_, count := Reconcile(Attributes{"pkgver": "1.3.1-2"}, s.source, "zlib")
	c.Check(count, Equals, 0)

	// epoch on the source side changes the expected composite
	source := s.source.Copy()
	source["epoch"] = "1"
	diffs, count := Reconcile(Attributes{"pkgver": "1.3.1-2"}, source, "zlib")
	c.Assert(count, Equals, 1)
	c.Check(diffs[0].Attribute, Equals, "pkgver")

	_, count = Reconcile(Attributes{"pkgver": "1:1.3.1-2"}, source, "zlib")
	c.Check(count, Equals, 0)
}

func (s *ReconcileSuite) TestSonameStripping(c *C) {
	source := s.source.Copy()
	source["depends"] = []string{"libc.so"}

	_, count := Reconcile(Attributes{"depends": []string{"libc.so=6-64"}}, source, "zlib")
	c.Check(count, Equals, 0)

	_, count = Reconcile(Attributes{"depends": []string{"foo"}}, Attributes{"pkgname": "p", "depends": []string{"bar"}}, "p")
	c.Check(count, Equals, 1)

	source["provides"] = []string{"libz.so"}
	_, count = Reconcile(Attributes{"provides": []string{"libz.so=1-64"}}, source, "zlib")
	c.Check(count, Equals, 0)

	// versioned specifier without the architecture suffix stays versioned
	_, count = Reconcile(Attributes{"depends": []string{"libc.so=6"}}, source, "zlib")
	c.Check(count, Equals, 1)
}

func (s *ReconcileSuite) TestLicenseJoin(c *C) {
	source := Attributes{"pkgname": "p", "license": []string{"MIT", "License"}}

	_, count := Reconcile(Attributes{"license": []string{"MIT License"}}, source, "p")
	c.Check(count, Equals, 0)

	_, count = Reconcile(Attributes{"license": []string{"GPL"}}, source, "p")
	c.Check(count, Equals, 1)
}

func (s *ReconcileSuite) TestGenericMismatch(c *C) {
	diffs, count := Reconcile(Attributes{"url": "https://other.example.com/"}, s.source, "zlib")
	c.Assert(count, Equals, 1)
	c.Check(diffs[0], DeepEquals, FieldDiff{"zlib", "url", "https://other.example.com/", "https://www.zlib.net/"})
}

func (s *ReconcileSuite) TestInputsNotMutated(c *C) {
	repo := Attributes{"depends": []string{"libc.so=6-64"}, "license": []string{"MIT License"}}
	source := Attributes{"pkgname": "p", "depends": []string{"libc.so"}, "license": []string{"MIT", "License"}}

	Reconcile(repo, source, "p")

	c.Check(repo["depends"], DeepEquals, []string{"libc.so=6-64"})
	c.Check(source["license"], DeepEquals, []string{"MIT", "License"})
}

func (s *ReconcileSuite) TestDiffString(c *C) {
	diff := FieldDiff{"zlib", "url", "a", "b"}
	c.Check(diff.String(), Equals, "DIFF(zlib|url):\n  repo   : a\n  SRCINFO: b")
}

func (s *ReconcileSuite) TestDiffMarshalJSON(c *C) {
	encoded, err := json.Marshal(FieldDiff{"zlib", "groups", []string{"base"}, nil})
	c.Assert(err, IsNil)
	c.Check(string(encoded), Equals, `{"Package":"zlib","Attribute":"groups","Repo":"[base]","Source":null}`)
}
