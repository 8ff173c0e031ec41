package storage

import (
	"sort"

	"github.com/sw33tLie/platescope/pkg/plate"
	"github.com/sw33tLie/platescope/pkg/vehicle"
)

// RegionStat counts stored plates per region letter.
type RegionStat struct {
	Code  byte
	Name  string
	Count int
}

// Stats summarizes a store's content.
type Stats struct {
	Total       int
	Cars        int
	Motorcycles int
	Regions     []RegionStat
	TopPrefixes []plate.PrefixCount
}

// BuildStats summarizes records, keeping the top most common prefixes.
func BuildStats(records []vehicle.Record, top int) Stats {
	s := Stats{Total: len(records)}
	byRegion := make(map[byte]int)
	plates := make([]string, 0, len(records))

	for _, r := range records {
		switch {
		case plate.IsCar(r.Plate):
			s.Cars++
			byRegion[r.Plate[0]]++
			plates = append(plates, r.Plate)
		case plate.IsMotorcycle(r.Plate):
			s.Motorcycles++
		}
	}

	for _, reg := range plate.Regions {
		if n := byRegion[reg.Code]; n > 0 {
			s.Regions = append(s.Regions, RegionStat{Code: reg.Code, Name: reg.Name, Count: n})
		}
	}
	sort.SliceStable(s.Regions, func(i, j int) bool { return s.Regions[i].Count > s.Regions[j].Count })

	prefixes := plate.ExtractPrefixes(plates)
	sort.SliceStable(prefixes, func(i, j int) bool { return prefixes[i].Count > prefixes[j].Count })
	if top > 0 && len(prefixes) > top {
		prefixes = prefixes[:top]
	}
	s.TopPrefixes = prefixes
	return s
}
