package outboxrepo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/core/domain/events"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *outboxrepo.GormOutboxRepository
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&outboxrepo.OutboxMessageDTO{}))
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE outbox_messages").Error)
	suite.repository = outboxrepo.NewGormOutboxRepository(suite.db)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_OrderCreated_StoresPayload() {
	ctx := context.Background()
	o := suite.newOrder(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	event, err := events.NewOrderCreated(o)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, event))

	messages, err := suite.repository.GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 1)

	msg := messages[0]
	suite.Equal(event.ID(), msg.ID)
	suite.Equal(o.ID().String(), msg.AggregateID)
	suite.Equal(events.OrderCreatedType, msg.EventType)
	suite.True(msg.OccurredAt.Equal(o.UpdatedAt()))

	var payload map[string]any
	suite.Require().NoError(json.Unmarshal(msg.Payload, &payload))
	suite.Equal(event.ID().String(), payload["eventId"])
	suite.Equal("order.created", payload["eventType"])
	suite.Equal(o.ID().String(), payload["orderId"])
	suite.Equal("c1", payload["customerId"])
	suite.InDelta(2, payload["itemCount"], 0)
	suite.Equal(map[string]any{"amount": "1100.00", "currency": "COP"}, payload["total"])
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_OrderCancelled_StoresReason() {
	ctx := context.Background()
	o := suite.newOrder(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	suite.Require().NoError(o.Cancel())
	event, err := events.NewOrderCancelled(o, "changed my mind")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, event))

	messages, err := suite.repository.GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 1)

	var payload map[string]any
	suite.Require().NoError(json.Unmarshal(messages[0].Payload, &payload))
	suite.Equal("changed my mind", payload["reason"])
	suite.NotContains(payload, "total")
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_NilEvent_Fails() {
	err := suite.repository.Add(context.Background(), nil)

	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_UnknownEvent_Fails() {
	err := suite.repository.Add(context.Background(), unknownEvent{})

	suite.Require().ErrorIs(err, events.ErrUnknownEvent)
	suite.assertCount(0)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetUnpublished_OldestFirstAndLimited() {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	// Insert newest first to make sure ordering comes from occurred_at.
	var ids []uuid.UUID
	for i := 2; i >= 0; i-- {
		event, err := events.NewOrderCreated(suite.newOrder(base.Add(time.Duration(i) * time.Minute)))
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(ctx, event))
		ids = append([]uuid.UUID{event.ID()}, ids...)
	}

	messages, err := suite.repository.GetUnpublished(ctx, 2)

	suite.Require().NoError(err)
	suite.Require().Len(messages, 2)
	suite.Equal(ids[0], messages[0].ID)
	suite.Equal(ids[1], messages[1].ID)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetUnpublished_InvalidLimit_Fails() {
	_, err := suite.repository.GetUnpublished(context.Background(), 0)

	suite.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkPublished_HidesMessages() {
	ctx := context.Background()
	first, err := events.NewOrderCreated(suite.newOrder(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))
	suite.Require().NoError(err)
	second, err := events.NewOrderCreated(suite.newOrder(time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	suite.Require().NoError(suite.repository.MarkPublished(ctx, first.ID()))

	messages, err := suite.repository.GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 1)
	suite.Equal(second.ID(), messages[0].ID)

	var row outboxrepo.OutboxMessageDTO
	suite.Require().NoError(suite.db.First(&row, "id = ?", first.ID()).Error)
	suite.NotNil(row.PublishedAt)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkPublished_NoIDs_IsNoop() {
	suite.Require().NoError(suite.repository.MarkPublished(context.Background()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetUnpublished_SkipsRowsLockedByAnotherTransaction() {
	ctx := context.Background()
	event, err := events.NewOrderCreated(suite.newOrder(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, event))

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	locked, err := outboxrepo.NewGormOutboxRepository(tx).GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(locked, 1)

	other := suite.db.Begin()
	suite.Require().NoError(other.Error)
	defer other.Rollback()

	skipped, err := outboxrepo.NewGormOutboxRepository(other).GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(skipped)
}

func (suite *OutboxRepositoryIntegrationTestSuite) newOrder(at time.Time) *order.Order {
	customerID, err := kernel.NewCustomerID("c1")
	suite.Require().NoError(err)

	items := make([]order.Item, 0, 2)
	for _, line := range []struct {
		product string
		qty     int
		price   string
	}{
		{"p1", 1, "1000.00"},
		{"p2", 2, "50.00"},
	} {
		pid, err := kernel.NewProductID(line.product)
		suite.Require().NoError(err)
		qty, err := kernel.NewQuantity(line.qty)
		suite.Require().NoError(err)
		price, err := kernel.NewMoney(decimal.RequireFromString(line.price), "COP")
		suite.Require().NoError(err)
		item, err := order.NewItem(pid, "product "+line.product, qty, price)
		suite.Require().NoError(err)
		items = append(items, item)
	}

	o, err := order.NewOrder(customerID, items, order.WithClock(func() time.Time { return at }))
	suite.Require().NoError(err)
	return o
}

func (suite *OutboxRepositoryIntegrationTestSuite) assertCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&outboxrepo.OutboxMessageDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

type unknownEvent struct{}

func (unknownEvent) ID() uuid.UUID         { return uuid.New() }
func (unknownEvent) OccurredAt() time.Time { return time.Now() }
func (unknownEvent) EventType() string     { return "order.unknown" }
func (unknownEvent) AggregateID() string   { return "o1" }

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
