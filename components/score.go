package components

// Score holds both players' points. Points are signed: in single player
// modes a miss docks a point instead of awarding one to an opponent.
type Score struct {
	P1 int16
	P2 int16
}
