// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

// Allocation is the integer seat assignment for one (year, alpha, house size).
type Allocation struct {
	Year   string               `json:"year"`
	Params AllocationParameters `json:"params"`
	Rows   []SeatRow            `json:"rows"`
}

// Total is the number of seats handed out.
func (a Allocation) Total() int {
	total := 0
	for _, r := range a.Rows {
		total += r.Seats
	}
	return total
}

// Seats returns the seat count for a state.
func (a Allocation) Seats(state string) (int, bool) {
	for _, r := range a.Rows {
		if r.State == state {
			return r.Seats, true
		}
	}
	return 0, false
}

// SeatMap returns state -> seats.
func (a Allocation) SeatMap() map[string]int {
	m := make(map[string]int, len(a.Rows))
	for _, r := range a.Rows {
		m[r.State] = r.Seats
	}
	return m
}

// Run computes the degressive-proportional allocation for one table.
// Alpha = 1 goes through the same path and yields strict proportionality.
func Run(table PopulationTable, params AllocationParameters) (Allocation, error) {
	if err := params.Validate(); err != nil {
		return Allocation{}, err
	}

	quotas, err := ComputeQuotas(table, params.Alpha, params.HouseSize)
	if err != nil {
		return Allocation{}, err
	}

	rows, err := Allocate(quotas, params.HouseSize, params.Floor)
	if err != nil {
		return Allocation{}, err
	}

	return Allocation{Year: table.Year(), Params: params, Rows: rows}, nil
}

// Proportional is Run with alpha fixed at 1.
func Proportional(table PopulationTable, houseSize, floor int) (Allocation, error) {
	return Run(table, AllocationParameters{Alpha: 1, HouseSize: houseSize, Floor: floor})
}

// BaselineAllocation turns the table's existing seats into an Allocation so
// the current apportionment can be evaluated with the same metrics.
func BaselineAllocation(table PopulationTable) (Allocation, error) {
	if !table.HasBaseline() {
		return Allocation{}, invalidInput("year %q: not every state has baseline seats", table.Year())
	}

	rows := make([]SeatRow, 0, table.Len())
	total := 0
	for _, s := range table.states {
		rows = append(rows, SeatRow{State: s.Name, Population: s.Population, Seats: *s.BaselineSeats})
		total += *s.BaselineSeats
	}
	if total == 0 {
		return Allocation{}, invalidInput("year %q: baseline seats sum to zero", table.Year())
	}

	for i := range rows {
		rows[i].Quota = float64(rows[i].Seats)
	}

	return Allocation{
		Year:   table.Year(),
		Params: AllocationParameters{Alpha: 1, HouseSize: total},
		Rows:   rows,
	}, nil
}
