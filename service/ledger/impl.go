package ledger

import (
	"math/big"
	"sync"

	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/log"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/ledger"
)

type balanceKey struct {
	token domain.Address
	owner domain.Address
}

type allowanceKey struct {
	token   domain.Address
	owner   domain.Address
	spender domain.Address
}

type holdingKey struct {
	collection domain.Address
	tokenId    domain.TokenId
	owner      domain.Address
}

type approvalKey struct {
	collection domain.Address
	owner      domain.Address
	operator   domain.Address
}

// Ledger keeps fungible balances and asset holdings in one
// mutex-guarded state so a settlement can move value and custody as a
// single indivisible step.
type Ledger struct {
	mu         sync.Mutex
	balances   map[balanceKey]*big.Int
	allowances map[allowanceKey]*big.Int
	holdings   map[holdingKey]int64
	approvals  map[approvalKey]bool
}

func New() *Ledger {
	return &Ledger{
		balances:   make(map[balanceKey]*big.Int),
		allowances: make(map[allowanceKey]*big.Int),
		holdings:   make(map[holdingKey]int64),
		approvals:  make(map[approvalKey]bool),
	}
}

func (l *Ledger) balanceOf(token, owner domain.Address) *big.Int {
	if b, ok := l.balances[balanceKey{token.ToLower(), owner.ToLower()}]; ok {
		return b
	}
	return domain.Big0
}

func (l *Ledger) allowanceOf(token, owner, spender domain.Address) *big.Int {
	if a, ok := l.allowances[allowanceKey{token.ToLower(), owner.ToLower(), spender.ToLower()}]; ok {
		return a
	}
	return domain.Big0
}

func (l *Ledger) BalanceOf(ctx ctx.Ctx, token, owner domain.Address) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.balanceOf(token, owner)), nil
}

func (l *Ledger) Allowance(ctx ctx.Ctx, token, owner, spender domain.Address) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.allowanceOf(token, owner, spender)), nil
}

func (l *Ledger) Approve(ctx ctx.Ctx, token, owner, spender domain.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return domain.ErrInvalidNumberFormat
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.allowances[allowanceKey{token.ToLower(), owner.ToLower(), spender.ToLower()}] = new(big.Int).Set(amount)
	return nil
}

func (l *Ledger) Mint(ctx ctx.Ctx, token, to domain.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return domain.ErrInvalidNumberFormat
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	key := balanceKey{token.ToLower(), to.ToLower()}
	l.balances[key] = new(big.Int).Add(l.balanceOf(token, to), amount)
	return nil
}

func (l *Ledger) HoldingOf(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId, owner domain.Address) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holdings[holdingKey{collection.ToLower(), tokenId, owner.ToLower()}], nil
}

func (l *Ledger) IsApprovedForAll(ctx ctx.Ctx, collection, owner, operator domain.Address) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.approvals[approvalKey{collection.ToLower(), owner.ToLower(), operator.ToLower()}], nil
}

func (l *Ledger) SetApprovalForAll(ctx ctx.Ctx, collection, owner, operator domain.Address, approved bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.approvals[approvalKey{collection.ToLower(), owner.ToLower(), operator.ToLower()}] = approved
	return nil
}

func (l *Ledger) MintAsset(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId, to domain.Address, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.holdings[holdingKey{collection.ToLower(), tokenId, to.ToLower()}] += quantity
	return nil
}

// Settle validates every leg before mutating anything, so a rejected
// leg leaves balances, allowances and holdings exactly as they were.
func (l *Ledger) Settle(ctx ctx.Ctx, s *ledger.Settlement) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	// phase 1: validate all legs against current state, accumulating
	// per-key deltas so multiple legs touching the same account are
	// checked in aggregate.
	spent := make(map[balanceKey]*big.Int)
	for _, leg := range s.TokenLegs {
		if leg.Amount == nil || leg.Amount.Sign() < 0 {
			return domain.ErrInvalidNumberFormat
		}
		key := balanceKey{leg.Token.ToLower(), leg.From.ToLower()}
		total, ok := spent[key]
		if !ok {
			total = new(big.Int)
			spent[key] = total
		}
		total.Add(total, leg.Amount)
		if l.balanceOf(leg.Token, leg.From).Cmp(total) < 0 {
			ctx.WithFields(log.Fields{
				"token": leg.Token,
				"from":  leg.From,
			}).Warn("settlement leg exceeds balance")
			return domain.ErrInsufficientBalance
		}
		if !leg.Spender.Equals(leg.From) && l.allowanceOf(leg.Token, leg.From, leg.Spender).Cmp(total) < 0 {
			ctx.WithFields(log.Fields{
				"token":   leg.Token,
				"from":    leg.From,
				"spender": leg.Spender,
			}).Warn("settlement leg exceeds allowance")
			return domain.ErrInsufficientAllowance
		}
	}
	moved := make(map[holdingKey]int64)
	for _, leg := range s.AssetLegs {
		if leg.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		key := holdingKey{leg.Collection.ToLower(), leg.TokenId, leg.From.ToLower()}
		moved[key] += leg.Quantity
		if l.holdings[key] < moved[key] {
			return domain.ErrNotOwningItem
		}
		if !leg.Operator.Equals(leg.From) && !l.approvals[approvalKey{leg.Collection.ToLower(), leg.From.ToLower(), leg.Operator.ToLower()}] {
			return domain.ErrNotApproved
		}
	}

	// phase 2: apply; nothing below can fail.
	for _, leg := range s.TokenLegs {
		fromKey := balanceKey{leg.Token.ToLower(), leg.From.ToLower()}
		toKey := balanceKey{leg.Token.ToLower(), leg.To.ToLower()}
		l.balances[fromKey] = new(big.Int).Sub(l.balanceOf(leg.Token, leg.From), leg.Amount)
		l.balances[toKey] = new(big.Int).Add(l.balanceOf(leg.Token, leg.To), leg.Amount)
		if !leg.Spender.Equals(leg.From) {
			aKey := allowanceKey{leg.Token.ToLower(), leg.From.ToLower(), leg.Spender.ToLower()}
			l.allowances[aKey] = new(big.Int).Sub(l.allowanceOf(leg.Token, leg.From, leg.Spender), leg.Amount)
		}
	}
	for _, leg := range s.AssetLegs {
		fromKey := holdingKey{leg.Collection.ToLower(), leg.TokenId, leg.From.ToLower()}
		toKey := holdingKey{leg.Collection.ToLower(), leg.TokenId, leg.To.ToLower()}
		l.holdings[fromKey] -= leg.Quantity
		if l.holdings[fromKey] == 0 {
			delete(l.holdings, fromKey)
		}
		l.holdings[toKey] += leg.Quantity
	}
	return nil
}
