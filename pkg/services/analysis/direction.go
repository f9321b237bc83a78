package analysis

import (
	"fmt"

	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/de-tools/trade-radar/pkg/services/aggregate"
)

type field func(domain.TransactionRecord) string

// roles decides which side of a record is the analysed entity and which is the counterparty.
type roles struct {
	entity              field
	counterparty        field
	counterpartyCountry field
	unknownCounterparty string
}

func rolesFor(direction domain.Direction) (roles, error) {
	switch direction {
	case domain.DirectionImporter, "":
		return roles{
			entity:              func(r domain.TransactionRecord) string { return r.Importer },
			counterparty:        func(r domain.TransactionRecord) string { return r.Exporter },
			counterpartyCountry: func(r domain.TransactionRecord) string { return r.ExportCountry },
			unknownCounterparty: domain.UnknownExporter,
		}, nil
	case domain.DirectionExporter:
		return roles{
			entity:              func(r domain.TransactionRecord) string { return r.Exporter },
			counterparty:        func(r domain.TransactionRecord) string { return r.Importer },
			counterpartyCountry: func(r domain.TransactionRecord) string { return r.ImportCountry },
			unknownCounterparty: domain.UnknownImporter,
		}, nil
	default:
		return roles{}, fmt.Errorf("%w: unsupported direction %q", domain.ErrInvalidRequest, direction)
	}
}

func (r roles) entityKey() aggregate.KeyFunc[domain.EntityKey] {
	return aggregate.EntityBy(r.entity)
}

func (r roles) pairKey() aggregate.KeyFunc[domain.PairKey] {
	return aggregate.PairBy(r.entity, r.counterparty, r.unknownCounterparty)
}
