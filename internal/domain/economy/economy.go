package economy

// Wallet holds the player's gold and lives.
// Gold is never forced negative: every debit goes through Spend.
type Wallet struct {
	gold  int
	lives int
}

// NewWallet creates a wallet with the given starting values
func NewWallet(gold, lives int) *Wallet {
	if gold < 0 {
		gold = 0
	}
	return &Wallet{gold: gold, lives: lives}
}

// Gold returns the current gold
func (w *Wallet) Gold() int {
	return w.gold
}

// Lives returns the remaining lives
func (w *Wallet) Lives() int {
	return w.lives
}

// CanAfford reports whether cost can be paid without going negative
func (w *Wallet) CanAfford(cost int) bool {
	return cost >= 0 && w.gold >= cost
}

// Spend debits cost if affordable and reports whether it did
func (w *Wallet) Spend(cost int) bool {
	if !w.CanAfford(cost) {
		return false
	}
	w.gold -= cost
	return true
}

// Credit adds gold (rewards, refunds). Negative amounts are ignored.
func (w *Wallet) Credit(amount int) {
	if amount > 0 {
		w.gold += amount
	}
}

// LoseLife removes one life
func (w *Wallet) LoseLife() {
	w.lives--
}

// Depleted reports whether the run is lost
func (w *Wallet) Depleted() bool {
	return w.lives <= 0
}

// Reset replaces both balances
func (w *Wallet) Reset(gold, lives int) {
	if gold < 0 {
		gold = 0
	}
	w.gold = gold
	w.lives = lives
}
