// Package layout maps a processing directory and session number to the
// directories the renamer reads from and writes to.
//
//	ProcessingDir/
//	  Rips/session<N>/disc<K>/...
//	  Rips/session<N>/renames/encode_dir.txt
//	  Encodes/[tv|movies]/<container>
//
// Nothing here touches the filesystem.
package layout

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Nomadcxx/mkvrenamer/internal/apperr"
)

const (
	RipsDirName    = "Rips"
	EncodesDirName = "Encodes"
	RenamesDirName = "renames"
	MarkerFileName = "encode_dir.txt"

	// Encodes subdirectories used when kinds are kept apart
	TVSubdir     = "tv"
	MoviesSubdir = "movies"

	MinSession = 1
	MaxSession = 99
)

// SessionID identifies Rips/session<N>
type SessionID int

// ParseSessionID checks that n is a usable session number
func ParseSessionID(n int) (SessionID, error) {
	if n < MinSession || n > MaxSession {
		return 0, &apperr.Error{Kind: apperr.InvalidSession, Detail: strconv.Itoa(n)}
	}
	return SessionID(n), nil
}

// DirName returns "session<N>"
func (s SessionID) DirName() string {
	return fmt.Sprintf("session%d", int(s))
}

// ProcessingDir is the root holding Rips/ and Encodes/
type ProcessingDir string

// RipsDir is ProcessingDir/Rips
type RipsDir string

// SessionDir is Rips/session<N>, containing disc1..discK
type SessionDir string

// RenamesDir is Rips/session<N>/renames, the staging area for renamed files
type RenamesDir string

// EncodesDir is the parent of destination containers
type EncodesDir string

func (p ProcessingDir) String() string { return string(p) }

// RipsDir returns PD/Rips
func (p ProcessingDir) RipsDir() RipsDir {
	return RipsDir(filepath.Join(string(p), RipsDirName))
}

// SessionDir returns PD/Rips/session<N>
func (p ProcessingDir) SessionDir(id SessionID) SessionDir {
	return SessionDir(filepath.Join(string(p.RipsDir()), id.DirName()))
}

// RenamesDir returns PD/Rips/session<N>/renames
func (p ProcessingDir) RenamesDir(id SessionID) RenamesDir {
	return p.SessionDir(id).RenamesDir()
}

// EncodesDir returns PD/Encodes, or PD/Encodes/<sub> when sub is set
func (p ProcessingDir) EncodesDir(sub string) EncodesDir {
	if sub == "" {
		return EncodesDir(filepath.Join(string(p), EncodesDirName))
	}
	return EncodesDir(filepath.Join(string(p), EncodesDirName, sub))
}

func (r RipsDir) String() string { return string(r) }

func (s SessionDir) String() string { return string(s) }

// RenamesDir returns the renames directory inside this session
func (s SessionDir) RenamesDir() RenamesDir {
	return RenamesDir(filepath.Join(string(s), RenamesDirName))
}

func (r RenamesDir) String() string { return string(r) }

// Join places a file name inside the renames directory
func (r RenamesDir) Join(name string) string {
	return filepath.Join(string(r), name)
}

// MarkerFile returns renames/encode_dir.txt
func (r RenamesDir) MarkerFile() string {
	return r.Join(MarkerFileName)
}

func (e EncodesDir) String() string { return string(e) }

// Join places a container path (possibly nested) inside the encodes directory
func (e EncodesDir) Join(container string) string {
	return filepath.Join(string(e), container)
}

// IDSuffix renders the identifier twice: "{tvdb-<id>} [tvdbid-<id>]"
func IDSuffix(tvdbID string) string {
	return fmt.Sprintf("{tvdb-%s} [tvdbid-%s]", tvdbID, tvdbID)
}

// SeasonFolder returns "<title> {tvdb-<id>} [tvdbid-<id>]/Season <NN>"
func SeasonFolder(title, tvdbID, season string) string {
	return filepath.Join(title+" "+IDSuffix(tvdbID), "Season "+PadSeason(season))
}

// MovieFolder returns "<title> - {tvdb-<id>} [tvdbid-<id>]"
func MovieFolder(title, tvdbID string) string {
	return title + " - " + IDSuffix(tvdbID)
}

// PadSeason left-pads the season with zeros to two characters
func PadSeason(season string) string {
	if n := 2 - len(season); n > 0 {
		return strings.Repeat("0", n) + season
	}
	return season
}

// HasSeparator reports whether s would span more than one path element
func HasSeparator(s string) bool {
	return strings.ContainsRune(s, '/') || strings.ContainsRune(s, filepath.Separator)
}
