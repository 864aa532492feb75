// models/rank.go
package models

// SpiritualRank is a discrete tier derived solely from cumulative score.
type SpiritualRank string

const (
	RankBeliever   SpiritualRank = "BELIEVER"
	RankDisciple   SpiritualRank = "DISCIPLE"
	RankMinister   SpiritualRank = "MINISTER"
	RankEvangelist SpiritualRank = "EVANGELIST"
	RankPastor     SpiritualRank = "PASTOR"
	RankApostle    SpiritualRank = "APOSTLE"
	RankCardinal   SpiritualRank = "CARDINAL"
)

// IsValid reports whether r is a known rank tier.
func (r SpiritualRank) IsValid() bool {
	switch r {
	case RankBeliever, RankDisciple, RankMinister, RankEvangelist, RankPastor, RankApostle, RankCardinal:
		return true
	}
	return false
}
