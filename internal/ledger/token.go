package ledger

import (
	"github.com/Pesokrava/market_ledger/internal/domain"
)

// Mint issues the next token to recipient
func (l *Ledger) Mint(call Call, to domain.Principal) (uint64, error) {
	if err := l.requireManager(call); err != nil {
		return 0, err
	}
	if err := l.checkPrincipal(to); err != nil {
		return 0, err
	}

	id := l.mint(to, nil)

	l.log.append(call, "mint", "Token minted")
	return id, nil
}

func (l *Ledger) mint(to domain.Principal, uri *string) uint64 {
	l.lastTokenID++
	l.tokens[l.lastTokenID] = &domain.Token{
		ID:    l.lastTokenID,
		Owner: to,
		URI:   cloneString(uri),
	}
	return l.lastTokenID
}

// SetTokenURI attaches an ipfs:// URI to a token
func (l *Ledger) SetTokenURI(call Call, id uint64, uri string) error {
	if err := l.requireManager(call); err != nil {
		return err
	}
	token, ok := l.tokens[id]
	if !ok {
		return domain.ErrInvalidToken
	}
	if err := l.check(uri, ruleURI, domain.ErrInvalidURI); err != nil {
		return err
	}

	token.URI = &uri

	l.log.append(call, "set-token-uri", "Token URI set")
	return nil
}

// Transfer moves a token; only its current owner may call
func (l *Ledger) Transfer(call Call, id uint64, from, to domain.Principal) error {
	token, ok := l.tokens[id]
	if !ok {
		return domain.ErrInvalidToken
	}
	if call.Caller != token.Owner || from != token.Owner {
		return domain.ErrNotAuthorized
	}
	if err := l.checkPrincipal(to); err != nil {
		return err
	}

	token.Owner = to

	l.log.append(call, "transfer", "Token transferred")
	return nil
}

// GetOwner returns the owner of a token, false if it does not exist
func (l *Ledger) GetOwner(id uint64) (domain.Principal, bool) {
	token, ok := l.tokens[id]
	if !ok {
		return "", false
	}
	return token.Owner, true
}

// GetToken returns a copy of a token
func (l *Ledger) GetToken(id uint64) (domain.Token, error) {
	token, ok := l.tokens[id]
	if !ok {
		return domain.Token{}, domain.ErrInvalidToken
	}
	t := *token
	t.URI = cloneString(token.URI)
	return t, nil
}

// LastTokenID is 0 until the first mint
func (l *Ledger) LastTokenID() uint64 {
	return l.lastTokenID
}
