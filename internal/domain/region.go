package domain

import (
	"fmt"
	"strings"
)

// Region is a Riot platform routing value, stored lower case.
type Region string

var platformRegions = map[Region]string{
	"br1":  "Brazil",
	"eun1": "Europe Nordic & East",
	"euw1": "Europe West",
	"jp1":  "Japan",
	"kr":   "Korea",
	"la1":  "Latin America North",
	"la2":  "Latin America South",
	"na1":  "North America",
	"oc1":  "Oceania",
	"ph2":  "Philippines",
	"ru":   "Russia",
	"sg2":  "Singapore",
	"th2":  "Thailand",
	"tr1":  "Turkey",
	"tw2":  "Taiwan",
	"vn2":  "Vietnam",
}

func ParseRegion(raw string) (Region, error) {
	region := Region(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := platformRegions[region]; !ok {
		return "", NewInvalidInputError([]FieldError{{Field: "serverRegion", Message: fmt.Sprintf("unknown region %q", raw)}})
	}
	return region, nil
}

func (r Region) Valid() bool {
	_, ok := platformRegions[Region(strings.ToLower(string(r)))]
	return ok
}

func (r Region) String() string { return string(r) }
