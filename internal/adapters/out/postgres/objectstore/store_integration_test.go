package objectstore_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"starmap/internal/adapters/out/postgres/objectstore"
	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ObjectStoreIntegrationTestSuite runs the store against a real PostgreSQL
// container, which is where the conditional create has to hold.
type ObjectStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *objectstore.GormObjectStore
	now       time.Time
	mu        sync.Mutex
}

func (suite *ObjectStoreIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(objectstore.Migrate(db))
}

func (suite *ObjectStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE objects").Error)

	suite.now = time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC)
	suite.store = objectstore.NewGormObjectStore(suite.db, "http://localhost:8080/artifacts",
		objectstore.WithClock(suite.clock))
}

func (suite *ObjectStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ObjectStoreIntegrationTestSuite) clock() time.Time {
	suite.mu.Lock()
	defer suite.mu.Unlock()
	return suite.now
}

func (suite *ObjectStoreIntegrationTestSuite) advance(d time.Duration) {
	suite.mu.Lock()
	defer suite.mu.Unlock()
	suite.now = suite.now.Add(d)
}

func (suite *ObjectStoreIntegrationTestSuite) TestPutGet() {
	ctx := suite.T().Context()

	obj, err := suite.store.Put(ctx, "orders/1001-1.pdf", []byte("%PDF-1.7"), artifact.ContentTypePDF)
	suite.Require().NoError(err)
	suite.Equal("http://localhost:8080/artifacts/orders/1001-1.pdf", obj.URL)
	suite.Equal(int64(8), obj.Size)

	got, body, err := suite.store.Get(ctx, "orders/1001-1.pdf")
	suite.Require().NoError(err)
	suite.Equal([]byte("%PDF-1.7"), body)
	suite.Equal(artifact.ContentTypePDF, got.ContentType)
	suite.True(got.CreatedAt.Equal(suite.now))

	_, err = suite.store.Put(ctx, "orders/1001-1.pdf", []byte("v2"), artifact.ContentTypePDF)
	suite.Require().NoError(err)
	_, body, err = suite.store.Get(ctx, "orders/1001-1.pdf")
	suite.Require().NoError(err)
	suite.Equal([]byte("v2"), body)

	_, _, err = suite.store.Get(ctx, "orders/missing.pdf")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ObjectStoreIntegrationTestSuite) TestList_PrefixIsLiteral() {
	ctx := suite.T().Context()

	for _, key := range []string{"orders/1-2.pdf", "orders/1-1.pdf", "orders/12-1.pdf", "ordersX1-1.pdf", "locks/1.lock"} {
		_, err := suite.store.Put(ctx, key, []byte("x"), artifact.ContentTypePDF)
		suite.Require().NoError(err)
		suite.advance(time.Second)
	}

	objects, err := suite.store.List(ctx, artifact.OrderPrefix(1), 0)
	suite.Require().NoError(err)
	suite.Require().Len(objects, 2)
	suite.Equal("orders/1-2.pdf", objects[0].Key, "oldest first")
	suite.Equal(int64(1), objects[0].Size)

	limited, err := suite.store.List(ctx, "orders/", 1)
	suite.Require().NoError(err)
	suite.Len(limited, 1)

	_, err = suite.store.Put(ctx, "a_b", nil, artifact.ContentTypeJSON)
	suite.Require().NoError(err)
	_, err = suite.store.Put(ctx, "axb", nil, artifact.ContentTypeJSON)
	suite.Require().NoError(err)
	underscore, err := suite.store.List(ctx, "a_", 0)
	suite.Require().NoError(err)
	suite.Len(underscore, 1, "underscore is not a wildcard")
}

func (suite *ObjectStoreIntegrationTestSuite) TestCreate() {
	ctx := suite.T().Context()
	key := artifact.LockKey(1001)

	_, err := suite.store.Create(ctx, key, []byte(`{"owner":"a"}`), artifact.ContentTypeJSON, 15*time.Minute)
	suite.Require().NoError(err)

	_, err = suite.store.Create(ctx, key, []byte(`{"owner":"b"}`), artifact.ContentTypeJSON, 15*time.Minute)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)

	_, err = suite.store.Create(ctx, key, []byte(`{"owner":"b"}`), artifact.ContentTypeJSON, 0)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)

	suite.advance(16 * time.Minute)

	_, err = suite.store.Create(ctx, key, []byte(`{"owner":"c"}`), artifact.ContentTypeJSON, 15*time.Minute)
	suite.Require().NoError(err, "expired object is taken over")

	_, body, err := suite.store.Get(ctx, key)
	suite.Require().NoError(err)
	suite.JSONEq(`{"owner":"c"}`, string(body))
}

func (suite *ObjectStoreIntegrationTestSuite) TestCreate_ConcurrentCallersClaimOnce() {
	const callers = 20
	var wins atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := suite.store.Create(context.Background(), "locks/7.lock", []byte("{}"), artifact.ContentTypeJSON, time.Minute)
			if err == nil {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	suite.Equal(int32(1), wins.Load())
}

func (suite *ObjectStoreIntegrationTestSuite) TestDeleteAndDeleteExpired() {
	ctx := suite.T().Context()

	_, err := suite.store.Put(ctx, "locks/1.lock", nil, artifact.ContentTypeJSON)
	suite.Require().NoError(err)
	_, err = suite.store.Put(ctx, "orders/1-1.pdf", nil, artifact.ContentTypePDF)
	suite.Require().NoError(err)
	suite.advance(time.Hour)
	_, err = suite.store.Put(ctx, "locks/2.lock", nil, artifact.ContentTypeJSON)
	suite.Require().NoError(err)

	n, err := suite.store.DeleteExpired(ctx, artifact.LockPrefix, suite.now.Add(-time.Minute))
	suite.Require().NoError(err)
	suite.Equal(int64(1), n)

	_, _, err = suite.store.Get(ctx, "orders/1-1.pdf")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.store.Delete(ctx, "locks/2.lock"))
	suite.ErrorIs(suite.store.Delete(ctx, "locks/2.lock"), errs.ErrObjectNotFound)
}

func TestObjectStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ObjectStoreIntegrationTestSuite))
}
