package service

import (
	"sort"

	"hireflow-api/modules/scheduling/entity"
)

// RankSlots tallies, for every slot, which participants declared themselves
// free in it and orders slots by descending vote count. The sort is stable:
// slots tied on vote count keep their original (generation) order, so
// repeated calls over unchanged input return an unchanged order. Voter
// names appear in participant-list order.
func RankSlots(slots []entity.TimeSlot, participants []entity.ParticipantWithVotes) []entity.RankedSlot {
	total := len(participants)

	ranked := make([]entity.RankedSlot, 0, len(slots))
	for _, slot := range slots {
		var voters []string
		for _, p := range participants {
			for _, v := range p.Votes {
				if v.SlotID == slot.ID {
					voters = append(voters, p.Name)
					break
				}
			}
		}

		ranked = append(ranked, entity.RankedSlot{
			Slot:         slot,
			VoteCount:    len(voters),
			Voters:       voters,
			PerfectMatch: total > 0 && len(voters) == total,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].VoteCount > ranked[j].VoteCount
	})

	return ranked
}

// BestMatch returns the highest-ranked slot, or nil when there are none.
func BestMatch(ranked []entity.RankedSlot) *entity.RankedSlot {
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}

// PerfectMatches returns the slots every participant voted for.
func PerfectMatches(ranked []entity.RankedSlot) []entity.RankedSlot {
	var perfect []entity.RankedSlot
	for _, rs := range ranked {
		if rs.PerfectMatch {
			perfect = append(perfect, rs)
		}
	}
	return perfect
}
