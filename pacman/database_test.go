package pacman

import (
	"archive/tar"
	"os"
	"path/filepath"

	"github.com/klauspost/pgzip"

	. "gopkg.in/check.v1"
)

type DatabaseSuite struct {
	databasePath string
}

var _ = Suite(&DatabaseSuite{})

func (s *DatabaseSuite) SetUpTest(c *C) {
	s.databasePath = filepath.Join(c.MkDir(), "test.db.tar.gz")

	f, err := os.Create(s.databasePath)
	c.Assert(err, IsNil)

	gzWriter := pgzip.NewWriter(f)
	tarWriter := tar.NewWriter(gzWriter)

	entries := []struct {
		name, contents string
	}{
		{"zlib-1.3.1-2", ""},
		{"zlib-1.3.1-2/desc", "%NAME%\nzlib\n\n%VERSION%\n1.3.1-2\n\n%DEPENDS%\nglibc\n"},
		{"zlib-1.3.1-2/files", "%FILES%\nusr/lib/libz.so\n"},
		{"foo-bar-1.0-2/desc", "%NAME%\nfoo-bar\n\n%VERSION%\n1.0-2\n\n%URL%\nhttps://example.com/\n"},
	}

	for _, entry := range entries {
		err = tarWriter.WriteHeader(&tar.Header{
			Name: entry.name,
			Mode: 0644,
			Size: int64(len(entry.contents)),
		})
		c.Assert(err, IsNil)
		_, err = tarWriter.Write([]byte(entry.contents))
		c.Assert(err, IsNil)
	}

	c.Assert(tarWriter.Close(), IsNil)
	c.Assert(gzWriter.Close(), IsNil)
	c.Assert(f.Close(), IsNil)
}

func (s *DatabaseSuite) TestLoadDatabase(c *C) {
	snapshot, err := LoadDatabase(s.databasePath)
	c.Assert(err, IsNil)

	c.Check(snapshot, HasLen, 2)

	// desc and files entries merge into one record; the top-level
	// directory entry is skipped
	c.Check(snapshot["zlib"], DeepEquals, Attributes{
		"pkgname": "zlib",
		"pkgver":  "1.3.1-2",
		"depends": []string{"glibc"},
	})

	// hyphenated package name survives version stripping
	c.Check(snapshot["foo-bar"], DeepEquals, Attributes{
		"pkgname": "foo-bar",
		"pkgver":  "1.0-2",
		"url":     "https://example.com/",
	})
}

func (s *DatabaseSuite) TestLoadDatabaseMissing(c *C) {
	_, err := LoadDatabase(filepath.Join(c.MkDir(), "nonexistent.db"))
	c.Check(err, ErrorMatches, "unable to open database .*")
}

func (s *DatabaseSuite) TestLoadDatabaseGarbage(c *C) {
	path := filepath.Join(c.MkDir(), "garbage.db")
	c.Assert(os.WriteFile(path, []byte("not a database at all"), 0644), IsNil)

	_, err := LoadDatabase(path)
	c.Check(err, ErrorMatches, "unable to read database .*")
}

func (s *DatabaseSuite) TestPackageNameFromEntry(c *C) {
	c.Check(PackageNameFromEntry("zlib-1.3.1-2/desc"), Equals, "zlib")
	c.Check(PackageNameFromEntry("foo-bar-1.0-2"), Equals, "foo-bar")
	c.Check(PackageNameFromEntry("foo-bar-1.0-2/desc"), Equals, "foo-bar")
	c.Check(PackageNameFromEntry("gcc-libs-1:13.2.1-3/files"), Equals, "gcc-libs")
}
