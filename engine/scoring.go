package engine

// Score returns the sum over suits in play of the highest number played.
func (g *Game) Score() int {
	return g.next.Score(g.Rules.Suits())
}

// Score returns the points represented by this progress over the given suits.
func (p Progress) Score(suits []Suit) int {
	total := 0
	for _, s := range suits {
		total += int(p[s]) - 1
	}
	return total
}
