package contract

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	domain "github.com/BruksfildServices01/rental-platform/internal/domain/contract"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

// DocumentStore uploads a contract document and returns its public URL.
type DocumentStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func isParty(c *models.Contract, actor uuid.UUID) bool {
	return c.TenantID == actor || c.LandlordID == actor
}

// ======================================================
// SEND
// ======================================================

type SendContract struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSendContract(repo domain.Repository, audit *audit.Dispatcher) *SendContract {
	return &SendContract{repo: repo, audit: audit}
}

func (uc *SendContract) Execute(ctx context.Context, id, actorID uuid.UUID) (*models.Contract, error) {
	c, err := uc.repo.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.LandlordID != actorID {
		return nil, httperr.ErrForbidden("not_owner")
	}
	if err := domain.Send(c); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateContract(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "contract_sent",
		Entity:   "contract",
		EntityID: &c.ID,
	})
	return c, nil
}

// ======================================================
// SIGN
// ======================================================

type SignContract struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewSignContract(repo domain.Repository, audit *audit.Dispatcher) *SignContract {
	return &SignContract{repo: repo, audit: audit, now: utcNow}
}

// Execute signs as the given party; the actor must be that party.
func (uc *SignContract) Execute(ctx context.Context, id, actorID uuid.UUID, as string) (*models.Contract, error) {
	signer, err := domain.ParseSigner(as)
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if (signer == domain.SignerTenant && c.TenantID != actorID) ||
		(signer == domain.SignerLandlord && c.LandlordID != actorID) {
		return nil, httperr.ErrForbidden("forbidden")
	}

	if err := domain.Sign(c, signer, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateContract(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "contract_signed",
		Entity:   "contract",
		EntityID: &c.ID,
		Metadata: map[string]any{"signer": signer, "status": c.ContractStatus},
	})
	return c, nil
}

// ======================================================
// DOCUMENT
// ======================================================

type AttachDocumentInput struct {
	ContractID  uuid.UUID
	ActorID     uuid.UUID
	Filename    string
	ContentType string
	Body        io.Reader
}

type AttachDocument struct {
	repo  domain.Repository
	store DocumentStore
	audit *audit.Dispatcher
}

// NewAttachDocument accepts a nil store; uploads then fail with
// document_storage_unavailable.
func NewAttachDocument(repo domain.Repository, store DocumentStore, audit *audit.Dispatcher) *AttachDocument {
	return &AttachDocument{repo: repo, store: store, audit: audit}
}

func (uc *AttachDocument) Execute(ctx context.Context, in AttachDocumentInput) (*models.Contract, error) {
	if uc.store == nil {
		return nil, httperr.ErrConflict("document_storage_unavailable")
	}
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(in.Filename), "\\", "/"))
	if in.Body == nil || name == "" || name == "." || name == "/" {
		return nil, httperr.ErrValidation("invalid_document")
	}

	c, err := uc.repo.GetContract(ctx, in.ContractID)
	if err != nil {
		return nil, err
	}
	if c.LandlordID != in.ActorID {
		return nil, httperr.ErrForbidden("not_owner")
	}

	url, err := uc.store.Upload(ctx, DocumentKey(c.ID, name), in.Body, in.ContentType)
	if err != nil {
		return nil, err
	}
	c.DocumentURL = url
	if err := uc.repo.UpdateContract(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ActorID,
		Action:   "contract_document_attached",
		Entity:   "contract",
		EntityID: &c.ID,
		Metadata: map[string]any{"url": url},
	})
	return c, nil
}

func DocumentKey(contractID uuid.UUID, filename string) string {
	return "contracts/" + contractID.String() + "/" + filename
}

// ======================================================
// READ
// ======================================================

type GetContract struct {
	repo domain.Repository
}

func NewGetContract(repo domain.Repository) *GetContract {
	return &GetContract{repo: repo}
}

func (uc *GetContract) Execute(ctx context.Context, id, actorID uuid.UUID) (*models.Contract, error) {
	c, err := uc.repo.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isParty(c, actorID) {
		return nil, httperr.ErrNotFound("contract_not_found")
	}
	return c, nil
}

type ListContracts struct {
	repo domain.Repository
}

func NewListContracts(repo domain.Repository) *ListContracts {
	return &ListContracts{repo: repo}
}

func (uc *ListContracts) Execute(ctx context.Context, actorID uuid.UUID) ([]models.Contract, error) {
	return uc.repo.ListContractsForParty(ctx, actorID)
}
