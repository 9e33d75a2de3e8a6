package payload

import (
	"regexp"

	"chainrelay/internal/chain"
	"chainrelay/internal/core"

	"github.com/jellydator/validation"
)

var (
	hashRegex = regexp.MustCompile(`(?i)^0x[a-f0-9]+$`)
	hexRegex  = regexp.MustCompile(`(?i)^(0x)?[a-f0-9]+$`)
)

const maxHashesPerRequest = 100

type TransactionsRequest struct {
	Transactions []string
}

func (t TransactionsRequest) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Transactions,
			validation.Required,
			validation.Length(1, maxHashesPerRequest),
			validation.Each(validation.Match(hashRegex)),
		),
	)
}

// SubmitTransactionRequest is the body of POST /relay/transactions. The
// reference pair is optional but all or nothing; productCode and projectId
// turn the submission into a paid one and then require a reference.
type SubmitTransactionRequest struct {
	Chain          int    `json:"chain"`
	ChainType      string `json:"chainType"`
	Transaction    string `json:"transaction"`
	ReferenceTable string `json:"referenceTable,omitempty"`
	ReferenceID    string `json:"referenceId,omitempty"`
	Address        string `json:"address,omitempty"`
	ProductCode    string `json:"productCode,omitempty"`
	ProjectID      string `json:"projectId,omitempty"`
}

func (s SubmitTransactionRequest) Validate() error {
	paid := s.ProductCode != "" || s.ProjectID != ""

	return validation.ValidateStruct(&s,
		validation.Field(&s.Chain, validation.Required, validation.Min(1)),
		validation.Field(&s.ChainType, validation.Required, validation.In(string(chain.TypeEVM), string(chain.TypeSubstrate))),
		validation.Field(&s.Transaction, validation.Required, validation.Match(hexRegex)),
		validation.Field(&s.ReferenceTable, validation.Required.When(s.ReferenceID != "" || paid)),
		validation.Field(&s.ReferenceID, validation.Required.When(s.ReferenceTable != "" || paid)),
		validation.Field(&s.ProductCode, validation.Required.When(s.ProjectID != "")),
		validation.Field(&s.ProjectID, validation.Required.When(s.ProductCode != "")),
	)
}

func (s SubmitTransactionRequest) ToSubmitRequest() core.SubmitRequest {
	return core.SubmitRequest{
		Key:            chain.NewKey(chain.Chain(s.Chain), chain.Type(s.ChainType)),
		Payload:        s.Transaction,
		ReferenceTable: s.ReferenceTable,
		ReferenceID:    s.ReferenceID,
		Address:        s.Address,
	}
}

// Charge is nil for unpaid submissions.
func (s SubmitTransactionRequest) Charge() *core.ChargeRequest {
	if s.ProductCode == "" {
		return nil
	}
	return &core.ChargeRequest{
		ProductCode: s.ProductCode,
		ProjectID:   s.ProjectID,
	}
}
