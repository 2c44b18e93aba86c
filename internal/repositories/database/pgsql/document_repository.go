package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/apperrors"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portsrepo "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/repositories"
)

// PgxDocumentRepository reads the open-document view of invoices and bills
// for the aging reports.
type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepository {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

// FindOpenDocuments returns open documents of the given kind with an
// outstanding balance, ordered by due date.
func (r *PgxDocumentRepository) FindOpenDocuments(ctx context.Context, companyID string, kind domain.DocumentKind) ([]domain.OpenDocument, error) {
	var query string
	switch kind {
	case domain.Receivable:
		query = `
			SELECT i.invoice_id, i.company_id, i.invoice_number, i.customer_id, c.customer_name,
			       i.status, i.issue_date, i.due_date, i.total, i.balance_due
			FROM invoices i
			JOIN customers c ON c.customer_id = i.customer_id
			WHERE i.company_id = $1
				AND i.status IN ('` + domain.InvoiceSent + `', '` + domain.InvoicePartial + `')
				AND i.balance_due > 0
			ORDER BY i.due_date, i.invoice_number;
		`
	case domain.Payable:
		query = `
			SELECT b.bill_id, b.company_id, b.bill_number, b.supplier_id, s.supplier_name,
			       b.status, b.issue_date, b.due_date, b.total, b.balance_due
			FROM bills b
			JOIN suppliers s ON s.supplier_id = b.supplier_id
			WHERE b.company_id = $1
				AND b.status IN ('` + domain.BillOpen + `', '` + domain.BillPartial + `')
				AND b.balance_due > 0
			ORDER BY b.due_date, b.bill_number;
		`
	default:
		return nil, apperrors.NewAppError(500, "unknown document kind "+string(kind), nil)
	}

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open documents for company "+companyID, err)
	}
	defer rows.Close()

	documents := []domain.OpenDocument{}
	for rows.Next() {
		doc := domain.OpenDocument{Kind: kind}
		if err := rows.Scan(
			&doc.DocumentID,
			&doc.CompanyID,
			&doc.DocumentNumber,
			&doc.PartyID,
			&doc.PartyName,
			&doc.Status,
			&doc.IssueDate,
			&doc.DueDate,
			&doc.Total,
			&doc.BalanceDue,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan open document row", err)
		}
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating open document rows", err)
	}
	return documents, nil
}
