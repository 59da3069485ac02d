// v3
// internal/sim/occupancy.go

package sim

import "time"

// updateOccupancy advances the 0-2 occupant automaton. No-op until the
// occupancy timer expires. Invariant on exit: totalOccupants equals the number
// of occupied rooms and stays within [0, 2].
func (s *Simulator) updateOccupancy(now time.Time) {
	if !now.After(s.occupancyChangeAt) {
		return
	}
	hour := s.clock.HourOfDay(now)
	isWeekend := s.clock.IsWeekend(now)

	var baseProb float64
	if isWeekend {
		if hour >= 8 && hour <= 23 {
			baseProb = 0.8
		} else {
			baseProb = 0.95
		}
	} else {
		switch {
		case hour >= 6 && hour <= 8: // morning routine
			baseProb = 0.9
		case hour > 8 && hour < 17: // work hours
			baseProb = 0.1
		case hour >= 17 && hour <= 22: // evening at home
			baseProb = 0.85
		default: // sleep hours
			baseProb = 0.95
		}
	}

	// Two sequential draws; collapsing this into one three-way draw would
	// change the distribution.
	target := 0
	if s.rng.Float64() < baseProb {
		target = 2
	} else if s.rng.Float64() < 0.6 {
		target = 1
	}

	if target > s.totalOccupants {
		s.addOccupants(target-s.totalOccupants, hour)
	} else if target < s.totalOccupants {
		s.removeOccupants(s.totalOccupants - target)
	}

	if s.totalOccupants > 0 && s.rng.Float64() < 0.3 {
		s.relocateOccupant()
	}

	s.occupancyChangeAt = now.Add(uniformDur(s.rng, 2700, 5400))
	s.log.Info("occupancy updated", "occupants", s.totalOccupants, "hour", hour, "weekend", isWeekend)
}

func (s *Simulator) addOccupants(n, hour int) {
	free := s.roomsWhere(false)
	if len(free) < n {
		n = len(free)
	}
	for i := 0; i < n; i++ {
		room := s.pickArrivalRoom(free, hour)
		s.occupied[room] = true
		free = removeRoom(free, room)
		s.totalOccupants++
	}
}

// pickArrivalRoom applies the time-of-day room preference: first free room in
// fixed order during sleep hours, room1 during the evening, random otherwise.
func (s *Simulator) pickArrivalRoom(free []string, hour int) string {
	switch {
	case hour >= 22 || hour <= 6:
		return free[0]
	case hour >= 17 && hour <= 21:
		for _, r := range free {
			if r == "room1" {
				return r
			}
		}
	}
	return free[s.rng.Intn(len(free))]
}

func (s *Simulator) removeOccupants(n int) {
	occupied := s.roomsWhere(true)
	if len(occupied) < n {
		n = len(occupied)
	}
	for i := 0; i < n; i++ {
		idx := s.rng.Intn(len(occupied))
		room := occupied[idx]
		s.occupied[room] = false
		occupied = append(occupied[:idx], occupied[idx+1:]...)
		s.totalOccupants--
	}
}

// relocateOccupant moves one occupant to a free room, leaving the total
// unchanged. No-op when every room is occupied or none is.
func (s *Simulator) relocateOccupant() {
	occupied := s.roomsWhere(true)
	free := s.roomsWhere(false)
	if len(occupied) == 0 || len(free) == 0 {
		return
	}
	from := occupied[s.rng.Intn(len(occupied))]
	to := free[s.rng.Intn(len(free))]
	s.occupied[from] = false
	s.occupied[to] = true
}

// roomsWhere returns rooms with the given occupancy flag, in fixed room order.
func (s *Simulator) roomsWhere(state bool) []string {
	var out []string
	for _, r := range s.rooms {
		if s.occupied[r] == state {
			out = append(out, r)
		}
	}
	return out
}

func removeRoom(rooms []string, room string) []string {
	for i, r := range rooms {
		if r == room {
			return append(rooms[:i], rooms[i+1:]...)
		}
	}
	return rooms
}
