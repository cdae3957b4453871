package ffmpeg

import "strconv"

var quietArgs = []string{"-hide_banner", "-nostats", "-loglevel", "warning"}

// StreamArgs reads input and writes the muxed result to stdout.
func StreamArgs(input string, outputOptions []string) []string {
	args := append([]string{}, quietArgs...)
	args = append(args, "-i", input)
	args = append(args, outputOptions...)
	return append(args, "pipe:1")
}

func SeekArgs(seconds float64) []string {
	return []string{"-ss", FormatSeconds(seconds)}
}

func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// TimestampsAtIntervals returns count evenly spaced positions, in seconds,
// between startPercent and endPercent of duration. The end is exclusive.
func TimestampsAtIntervals(count int, duration float64, startPercent, endPercent float64) []float64 {
	if count <= 0 || duration <= 0 {
		return nil
	}

	secondsPerPercent := duration / 100
	startPosition := secondsPerPercent * startPercent
	endPosition := secondsPerPercent * endPercent
	interval := (endPosition - startPosition) / float64(count)

	timestamps := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		timestamps = append(timestamps, startPosition+interval*float64(i))
	}

	return timestamps
}
