// Package hymns narrows a hymnal song list down to the numbers requested
// on the command line.
package hymns

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brogergvhs/choirscrape/internal/providers"
)

// Filter applies a "a-b" range or a "n,m,..." list of hymn numbers.
// A range wins over a list; with neither, all songs are returned.
func Filter(all []providers.Song, rng, list string) ([]providers.Song, error) {
	if rng != "" {
		start, end, err := ParseRange(rng)
		if err != nil {
			return nil, err
		}

		return FilterRange(all, start, end), nil
	}
	if list != "" {
		nums, err := ParseList(list)
		if err != nil {
			return nil, err
		}

		return FilterList(all, nums), nil
	}

	return all, nil
}

func ParseRange(rng string) (int, int, error) {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid range %q (expected e.g. 1-535)", rng)
	}

	start, err1 := atoi(parts[0])
	end, err2 := atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("invalid range %q (expected e.g. 1-535)", rng)
	}
	if start <= 0 || end <= 0 || start > end {
		return 0, 0, fmt.Errorf("invalid range %q: bounds must be positive and ascending", rng)
	}

	return start, end, nil
}

func ParseList(list string) ([]int, error) {
	var out []int
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		n, err := atoi(p)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid hymn number %q in list", p)
		}
		out = append(out, n)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("empty hymn list %q", list)
	}

	return out, nil
}

func FilterRange(all []providers.Song, start, end int) []providers.Song {
	out := []providers.Song{}
	for _, s := range all {
		if s.Nr >= start && s.Nr <= end {
			out = append(out, s)
		}
	}

	return out
}

// FilterList keeps the songs whose number is in nums. The result follows
// the order of all, so repeated or unsorted numbers give one song each.
func FilterList(all []providers.Song, nums []int) []providers.Song {
	want := make(map[int]bool, len(nums))
	for _, n := range nums {
		want[n] = true
	}

	out := []providers.Song{}
	for _, s := range all {
		if want[s.Nr] {
			out = append(out, s)
		}
	}

	return out
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
