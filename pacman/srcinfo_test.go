package pacman

import (
	. "gopkg.in/check.v1"
)

type SrcinfoSuite struct{}

var _ = Suite(&SrcinfoSuite{})

const zlibSrcinfo = `pkgbase = zlib
	pkgdesc = Compression library implementing the deflate compression method
	pkgver = 1.3.1
	pkgrel = 2
	url = https://www.zlib.net/
	arch = x86_64
	license = custom
	makedepends = cmake
	depends = glibc
	provides = libz.so

pkgname = zlib
`

const splitSrcinfo = `pkgbase = gcc
	pkgver = 13.2.1
	pkgrel = 3
	epoch = 1
	url = https://gcc.gnu.org
	arch = x86_64
	license = GPL
	depends = binutils

pkgname = gcc

pkgname = gcc-libs
	pkgdesc = Runtime libraries shipped by GCC
	depends = glibc
`

func (s *SrcinfoSuite) TestParseSrcinfo(c *C) {
	si, err := ParseSrcinfo([]byte(zlibSrcinfo))
	c.Assert(err, IsNil)
	c.Check(si.Pkgbase, Equals, "zlib")
	c.Check(si.Pkgver, Equals, "1.3.1")

	_, err = ParseSrcinfo([]byte("pkgname = broken"))
	c.Check(err, ErrorMatches, "unable to parse SRCINFO.*")
}

func (s *SrcinfoSuite) TestSrcinfoPackageNames(c *C) {
	si, err := ParseSrcinfo([]byte(splitSrcinfo))
	c.Assert(err, IsNil)
	c.Check(SrcinfoPackageNames(si), DeepEquals, []string{"gcc", "gcc-libs"})
}

func (s *SrcinfoSuite) TestSrcinfoAttributes(c *C) {
	si, err := ParseSrcinfo([]byte(zlibSrcinfo))
	c.Assert(err, IsNil)

	attributes, err := SrcinfoAttributes(si, "zlib")
	c.Assert(err, IsNil)

	c.Check(attributes["pkgname"], Equals, "zlib")
	c.Check(attributes["pkgbase"], Equals, "zlib")
	c.Check(attributes["pkgver"], Equals, "1.3.1")
	c.Check(attributes["pkgrel"], Equals, "2")
	c.Check(attributes["epoch"], Equals, "")
	c.Check(attributes["url"], Equals, "https://www.zlib.net/")
	c.Check(attributes["depends"], DeepEquals, []string{"glibc"})
	c.Check(attributes["makedepends"], DeepEquals, []string{"cmake"})
	c.Check(attributes["provides"], DeepEquals, []string{"libz.so"})

	_, err = SrcinfoAttributes(si, "nonexistent")
	c.Check(err, NotNil)
}

func (s *SrcinfoSuite) TestSrcinfoAttributesSplit(c *C) {
	si, err := ParseSrcinfo([]byte(splitSrcinfo))
	c.Assert(err, IsNil)

	attributes, err := SrcinfoAttributes(si, "gcc-libs")
	c.Assert(err, IsNil)

	c.Check(attributes["pkgname"], Equals, "gcc-libs")
	c.Check(attributes["pkgbase"], Equals, "gcc")
	c.Check(attributes["pkgdesc"], Equals, "Runtime libraries shipped by GCC")
	c.Check(attributes["depends"], DeepEquals, []string{"glibc"})
	c.Check(attributes["epoch"], Equals, "1")
}

func (s *SrcinfoSuite) TestConstructVersion(c *C) {
	c.Check(ConstructVersion("1.3.1", "2", ""), Equals, "1.3.1-2")
	c.Check(ConstructVersion("13.2.1", "3", "1"), Equals, "1:13.2.1-3")
}
