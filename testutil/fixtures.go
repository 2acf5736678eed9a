// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import "github.com/danielhkuo/fair-seats/apportion"

// indiaCensus2011 lists Census 2011 populations for the states and union
// territories, with the undivided Andhra Pradesh.
var indiaCensus2011 = []struct {
	name       string
	population int64
}{
	{"Andaman and Nicobar Islands", 380581},
	{"Andhra Pradesh", 84580777},
	{"Arunachal Pradesh", 1383727},
	{"Assam", 31205576},
	{"Bihar", 104099452},
	{"Chandigarh", 1055450},
	{"Chhattisgarh", 25545198},
	{"Dadra and Nagar Haveli", 343709},
	{"Daman and Diu", 243247},
	{"Delhi", 16787941},
	{"Goa", 1458545},
	{"Gujarat", 60439692},
	{"Haryana", 25351462},
	{"Himachal Pradesh", 6864602},
	{"Jammu and Kashmir", 12541302},
	{"Jharkhand", 32988134},
	{"Karnataka", 61095297},
	{"Kerala", 33406061},
	{"Lakshadweep", 64473},
	{"Madhya Pradesh", 72626809},
	{"Maharashtra", 112374333},
	{"Manipur", 2855794},
	{"Meghalaya", 2966889},
	{"Mizoram", 1097206},
	{"Nagaland", 1978502},
	{"Odisha", 41974218},
	{"Puducherry", 1247953},
	{"Punjab", 27743338},
	{"Rajasthan", 68548437},
	{"Sikkim", 610577},
	{"Tamil Nadu", 72147030},
	{"Tripura", 3673917},
	{"Uttar Pradesh", 199812341},
	{"Uttarakhand", 10086292},
	{"West Bengal", 91276115},
}

// IndiaStates returns a fresh copy of the 2011 census fixture
func IndiaStates() []apportion.State {
	states := make([]apportion.State, len(indiaCensus2011))
	for i, s := range indiaCensus2011 {
		states[i] = apportion.State{Name: s.name, Population: s.population}
	}
	return states
}

// SmallStates is the three-state example used across handler tests
func SmallStates() []apportion.State {
	return []apportion.State{
		{Name: "s1", Population: 10_000_000},
		{Name: "s2", Population: 5_000_000},
		{Name: "s3", Population: 1_000_000},
	}
}
