package domain

// Token is an entry of the minimal ownership ledger
type Token struct {
	ID    uint64    `json:"id"`
	Owner Principal `json:"owner"`
	URI   *string   `json:"uri,omitempty"`
}

// NFTContract is the contract-wide NFT switch
type NFTContract struct {
	Ref     string `json:"contract"`
	Enabled bool   `json:"enabled"`
}

// NFTBinding configures minting for one product
type NFTBinding struct {
	ProductID     uint64  `json:"product_id"`
	TokenContract string  `json:"token_contract"`
	Enabled       bool    `json:"enabled"`
	URITemplate   *string `json:"uri_template,omitempty"`
}
