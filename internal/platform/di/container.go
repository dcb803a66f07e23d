// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"log"
	"strings"

	catalogq "storefront/internal/application/query/catalog"
	ordersq "storefront/internal/application/query/orders"
	usecase "storefront/internal/application/usecase"

	outfs "storefront/internal/adapters/out/firestore"
	gcso "storefront/internal/adapters/out/gcs"
	"storefront/internal/adapters/out/mail"

	userdom "storefront/internal/domain/user"
)

// Container is the storefront DI container.
// Pure DI: build deps only. No routing branching, no reflection tricks.
type Container struct {
	Infra *Infra

	// Usecases
	MembershipUC *usecase.MembershipUsecase
	CheckoutUC   *usecase.CheckoutUsecase
	InventoryUC  *usecase.InventoryUsecase
	OrderUC      *usecase.OrderUsecase
	ReviewUC     *usecase.ReviewUsecase

	// Queries
	CatalogQ *catalogq.Query
	OrdersQ  *ordersq.Query

	// Needed by auth middleware (uid -> user doc)
	UserRepo userdom.Repository

	// Watcher feeds the catalog query its live snapshot (owned; Close-managed)
	Watcher *outfs.CatalogWatcherFS
}

// NewContainer builds the container on top of infra. The catalog watcher is
// started here and stopped by Close.
func NewContainer(ctx context.Context, infra *Infra) (*Container, error) {
	if infra == nil {
		var err error
		infra, err = NewInfra(ctx)
		if err != nil {
			return nil, err
		}
	}
	if infra.Config == nil {
		return nil, errors.New("di: infra config is nil")
	}
	if infra.Firestore == nil || infra.Firestore.Client == nil {
		return nil, errors.New("di: infra.Firestore is nil")
	}
	if infra.GCS == nil {
		return nil, errors.New("di: infra.GCS is nil")
	}

	cfg := infra.Config
	fsClient := infra.Firestore.Client

	c := &Container{Infra: infra}

	// --------------------------------------------------------
	// Firestore repositories
	// --------------------------------------------------------
	itemRepo := outfs.NewItemRepositoryFS(fsClient)
	memberRepo := outfs.NewMembershipRepositoryFS(fsClient)
	orderRepo := outfs.NewOrderRepositoryFS(fsClient)
	checkoutRepo := outfs.NewCheckoutRepositoryFS(fsClient)
	reviewRepo := outfs.NewReviewRepositoryFS(fsClient)
	userRepo := outfs.NewUserRepositoryFS(fsClient)
	c.UserRepo = userRepo

	// --------------------------------------------------------
	// GCS repositories
	// --------------------------------------------------------
	imageRepo := gcso.NewItemImageRepositoryGCS(infra.GCS, cfg.ItemImageBucket)
	urlResolver := gcso.NewItemImageURLResolver(cfg.ItemImageBucket)

	// --------------------------------------------------------
	// Catalog watcher (live snapshot source; the catalog query falls
	// back to one-shot reads until the first snapshot arrives)
	// --------------------------------------------------------
	c.Watcher = outfs.NewCatalogWatcherFS(fsClient)
	if err := c.Watcher.Start(context.Background()); err != nil {
		log.Printf("[di] WARN: catalog watcher start failed: %v (catalog served from one-shot reads)", err)
	}

	// --------------------------------------------------------
	// Mail (best-effort: checkout works without a mailer)
	// --------------------------------------------------------
	var mailer usecase.ConfirmationSender
	{
		apiKey := strings.TrimSpace(cfg.SendGridAPIKey)
		if apiKey == "" && infra.Secrets != nil {
			v, err := infra.Secrets.Get(ctx, cfg.SendGridSecretName)
			if err != nil {
				log.Printf("[di] WARN: sendgrid key lookup failed: %v (confirmation mail disabled)", err)
			} else {
				apiKey = v
			}
		}
		from := strings.TrimSpace(cfg.MailFrom)
		if apiKey != "" && from != "" {
			mailer = mail.NewOrderMailer(mail.NewSendGridClient(apiKey), from)
			log.Printf("[di] order confirmation mailer initialized")
		} else {
			log.Printf("[di] order confirmation mailer disabled (missing key or MAIL_FROM)")
		}
	}

	// --------------------------------------------------------
	// Usecases
	// --------------------------------------------------------
	c.MembershipUC = usecase.NewMembershipUsecase(memberRepo, itemRepo)
	c.CheckoutUC = usecase.NewCheckoutUsecase(checkoutRepo, userRepo, mailer, nil)
	c.InventoryUC = usecase.NewInventoryUsecase(itemRepo, userRepo, nil).WithImages(imageRepo)
	c.OrderUC = usecase.NewOrderUsecase(orderRepo, userRepo, nil)
	c.ReviewUC = usecase.NewReviewUsecase(reviewRepo, itemRepo, userRepo, nil)

	// --------------------------------------------------------
	// Queries
	// --------------------------------------------------------
	c.CatalogQ = catalogq.NewQuery(itemRepo, urlResolver, c.Watcher)
	c.OrdersQ = ordersq.NewQuery(orderRepo, itemRepo)

	log.Printf(
		"[di] container built (firestore=%t gcs=%t firebaseAuth=%t mailer=%t watcher=%t)",
		infra.Firestore != nil,
		infra.GCS != nil,
		infra.FirebaseAuth != nil,
		mailer != nil,
		c.Watcher != nil,
	)

	return c, nil
}

// Close stops container-owned resources. Infra clients are closed by the
// owner of Infra, not here.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Watcher != nil {
		c.Watcher.Stop()
	}
	return nil
}
