package capture

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Session directories are named
//
//	dca_<mmmdd>_<hhmm>_trx<tx><rx>_n<samples>xp<chirps>_fps<fps>_<label>
//
// for example dca_oct15_1432_trx14_n128xp64_fps10_walk. tx and rx are one
// digit each.
var sessionNameRE = regexp.MustCompile(
	`^dca_([a-z]{3})(\d{2})_(\d{2})(\d{2})_trx(\d)(\d)_n(\d+)xp(\d+)_fps(\d+(?:\.\d+)?)_(.+)$`)

// FormatSessionName builds the session directory name for a capture started
// at t with geometry g. The label defaults to "test".
func FormatSessionName(t time.Time, g Geometry) string {
	label := g.Label
	if label == "" {
		label = "test"
	}
	return fmt.Sprintf("dca_%s%02d_%02d%02d_trx%d%d_n%dxp%d_fps%s_%s",
		strings.ToLower(t.Month().String()[:3]), t.Day(), t.Hour(), t.Minute(),
		g.NumTx, g.NumRx, g.NumSamples, g.NumChirps,
		strconv.FormatFloat(g.FPS, 'f', -1, 64), label)
}

// ParseSessionName recovers the geometry encoded in a session directory name.
// Only the base name of a path is considered. The header size is not part of
// the name and is set to [DefaultHeaderWords].
func ParseSessionName(name string) (Geometry, error) {
	base := filepath.Base(filepath.Clean(name))
	m := sessionNameRE.FindStringSubmatch(base)
	if m == nil {
		return Geometry{}, &ConfigError{Detail: fmt.Sprintf("session name %q does not follow dca_<mmmdd>_<hhmm>_trx<tx><rx>_n<samples>xp<chirps>_fps<fps>_<label>", base)}
	}

	if _, err := time.Parse("Jan", strings.ToUpper(m[1][:1])+m[1][1:]); err != nil {
		return Geometry{}, &ConfigError{Detail: fmt.Sprintf("session name %q: unknown month %q", base, m[1])}
	}

	ints := make([]int, 0, 4)
	for _, s := range []string{m[5], m[6], m[7], m[8]} {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Geometry{}, &ConfigError{Detail: fmt.Sprintf("session name %q: %v", base, err)}
		}
		ints = append(ints, v)
	}

	fps, err := strconv.ParseFloat(m[9], 64)
	if err != nil {
		return Geometry{}, &ConfigError{Detail: fmt.Sprintf("session name %q: %v", base, err)}
	}

	g := Geometry{
		NumTx:       ints[0],
		NumRx:       ints[1],
		NumSamples:  ints[2],
		NumChirps:   ints[3],
		HeaderWords: DefaultHeaderWords,
		IQFactor:    2,
		FPS:         fps,
		Label:       m[10],
	}
	if err := g.Validate(); err != nil {
		return Geometry{}, &ConfigError{Detail: fmt.Sprintf("session name %q: %v", base, err)}
	}
	return g, nil
}
