// Package carus extracts the works of a Carus-Verlag choir book page.
//
// The work list only renders its details after each entry's accordion panel
// has been opened in a real browser, so entries are driven through a go-rod
// session while the field extraction itself runs on plain HTML snapshots.
package carus
