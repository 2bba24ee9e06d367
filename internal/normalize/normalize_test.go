package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpaces(t *testing.T) {
	cases := []struct {
		in, expect string
	}{
		{"", ""},
		{"   ", ""},
		{"  Chorbuch\n\tAdvent  ", "Chorbuch Advent"},
		{"SATB  (a cappella)", "SATB (a cappella)"},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, Spaces(test.in), "input %q", test.in)
	}
}

func TestStripZurPerson(t *testing.T) {
	cases := []struct {
		in, expect string
	}{
		{"", ""},
		{"Johann Sebastian Bach zur Person", "Johann Sebastian Bach"},
		{"ZUR PERSON  Bach", "Bach"},
		{"Zurück zur Personalie", "Zurück zur Personalie"},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, StripZurPerson(test.in), "input %q", test.in)
	}
}

func TestKey(t *testing.T) {
	cases := []struct {
		in, expect string
	}{
		{"", ""},
		{"f-Moll", "f"},
		{"Es-Dur", "Es"},
		{"  G-dur ", "G"},
		{"d-MOLL / F-Dur", "d / F"},
		{"modal", "modal"},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, Key(test.in), "input %q", test.in)
	}
}

func TestPersonName(t *testing.T) {
	cases := []struct {
		in, expect string
	}{
		{"", ""},
		{"zur Person", ""},
		{"Anonymus", "Anonymus"},
		{"Johann Sebastian Bach", "Bach, Johann Sebastian"},
		{"Bach, Johann Sebastian", "Bach, Johann Sebastian"},
		{"Felix  Mendelssohn Bartholdy zur Person", "Bartholdy, Felix Mendelssohn"},
		{"Heinrich Schütz", "Schütz, Heinrich"},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, PersonName(test.in), "input %q", test.in)
	}
}

func TestLifeYears(t *testing.T) {
	cases := []struct {
		in, expect string
	}{
		{"", ""},
		{"Paul Gerhardt (1607–1676)", "Paul Gerhardt"},
		{"Paul Gerhardt (1607-1676)", "Paul Gerhardt"},
		{"Martin Luther (1524)", "Martin Luther"},
		{"Martin Luther [1524]", "Martin Luther"},
		{"Johann Crüger 1647", "Johann Crüger"},
		{"1653, Johann Crüger", "Johann Crüger"},
		{"Nikolaus Herman (1480–1561) 1560", "Nikolaus Herman"},
		{"Michael Praetorius / ", "Michael Praetorius"},
		{"Georg Weissel\u00a0 (1623)", "Georg Weissel"},
		{"Jochen Klepper (\u00a01938\u00a0)", "Jochen Klepper"},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, LifeYears(test.in), "input %q", test.in)
	}
}
