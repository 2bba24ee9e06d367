// Package eg scrapes the Stammteil (Nr 1–535) of the Evangelisches
// Gesangbuch: section names from the Wikipedia hymn list, numbers and
// titles from the Liederdatenbank songbook page, and the "Melodie:" and
// "Text:" authors from each song's detail page.
package eg
