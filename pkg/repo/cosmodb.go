package repo

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/cockroachdb/errors"
	"github.com/gammazero/workerpool"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

const (
	processedContainer = "processed"
	unmatchedContainer = "unmatched"
	duplicateContainer = "duplicates"
	defaultPoolSize    = 50
)

type Cosmo struct {
	cl          *azcosmos.DatabaseClient
	setupCalled bool
}

func NewCosmo(
	cl *azcosmos.Client,
	dbName string,
) (*Cosmo, error) {
	_, err := cl.CreateDatabase(context.Background(), azcosmos.DatabaseProperties{
		ID: dbName,
	}, &azcosmos.CreateDatabaseOptions{})

	c := &Cosmo{}

	if realErr := c.ignoreDuplicateErr(err); realErr != nil {
		return nil, realErr
	}

	db, err := cl.NewDatabase(dbName)
	if err != nil {
		return nil, err
	}
	c.cl = db

	if err = c.setupContainers(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Cosmo) setupContainers() error {
	if c.setupCalled {
		return nil
	}

	for _, name := range []string{processedContainer, unmatchedContainer, duplicateContainer} {
		_, err := c.cl.CreateContainer(context.Background(), azcosmos.ContainerProperties{
			ID: name,
			PartitionKeyDefinition: azcosmos.PartitionKeyDefinition{
				Paths: []string{"/channel"},
			},
		}, &azcosmos.CreateContainerOptions{})
		if err = c.ignoreDuplicateErr(err); err != nil {
			return errors.Wrapf(err, "failed to create container %s", name)
		}
	}

	c.setupCalled = true

	return nil
}

func (c *Cosmo) ignoreDuplicateErr(err error) error {
	if err == nil {
		return nil
	}
	var azureErr *azcore.ResponseError
	if errors.As(err, &azureErr) && azureErr.StatusCode == 409 {
		return nil
	}

	return err
}

func (c *Cosmo) container(name string) (*azcosmos.ContainerClient, error) {
	if err := c.setupContainers(); err != nil {
		return nil, err
	}

	return c.cl.NewContainer(name)
}

// AddProcessed stores audit records. Every message is attempted; failures are joined.
func (c *Cosmo) AddProcessed(ctx context.Context, messages []*database.ProcessedMessage) error {
	if len(messages) == 0 {
		return nil
	}

	container, err := c.container(processedContainer)
	if err != nil {
		return err
	}

	pool := workerpool.New(defaultPoolSize)

	var mut sync.Mutex
	var finalErr error

	for _, msg1 := range messages {
		msgCopy := msg1

		pool.Submit(func() {
			if itemErr := c.upsert(ctx, container, msgCopy); itemErr != nil {
				mut.Lock()
				finalErr = errors.Join(finalErr, itemErr)
				mut.Unlock()
			}
		})
	}

	pool.StopWait()

	return finalErr
}

func (c *Cosmo) AddUnmatched(ctx context.Context, message *database.ProcessedMessage) error {
	container, err := c.container(unmatchedContainer)
	if err != nil {
		return err
	}

	return c.upsert(ctx, container, message)
}

func (c *Cosmo) upsert(
	ctx context.Context,
	container *azcosmos.ContainerClient,
	message *database.ProcessedMessage,
) error {
	bytes, err := json.Marshal(message)
	if err != nil {
		return errors.WithStack(err)
	}

	partitionKey := azcosmos.NewPartitionKeyString(string(message.Channel))

	if _, err = container.UpsertItem(ctx, partitionKey, bytes, nil); err != nil {
		return errors.Wrapf(err, "failed to upsert %s", message.ID)
	}

	return nil
}

// GetUnmatched returns messages awaiting manual triage, newest first.
func (c *Cosmo) GetUnmatched(
	ctx context.Context,
	channel database.Channel,
) ([]*database.ProcessedMessage, error) {
	container, err := c.container(unmatchedContainer)
	if err != nil {
		return nil, err
	}

	partitionKey := azcosmos.NewPartitionKeyString(string(channel))

	query := "SELECT * FROM c order by c.createdAt desc"
	pager := container.NewQueryItemsPager(query, partitionKey, nil)

	var items []*database.ProcessedMessage

	for pager.More() {
		response, pageErr := pager.NextPage(ctx)
		if pageErr != nil {
			return nil, pageErr
		}

		for _, bytes := range response.Items {
			item := database.ProcessedMessage{}
			if err = json.Unmarshal(bytes, &item); err != nil {
				return nil, err
			}

			items = append(items, &item)
		}
	}

	return items, nil
}

// AddDuplicateKey creates the key document; a conflict means it was already there.
func (c *Cosmo) AddDuplicateKey(
	ctx context.Context,
	key string,
	channel database.Channel,
) (bool, error) {
	container, err := c.container(duplicateContainer)
	if err != nil {
		return false, err
	}

	partitionKey := azcosmos.NewPartitionKeyString(string(channel))

	b, err := json.Marshal(map[string]string{
		"id":        key,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
		"channel":   string(channel),
	})
	if err != nil {
		return false, err
	}

	if _, err = container.CreateItem(ctx, partitionKey, b, nil); err != nil {
		if c.ignoreDuplicateErr(err) == nil {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to create duplicate key")
	}

	return true, nil
}

func (c *Cosmo) RemoveDuplicateKey(
	ctx context.Context,
	key string,
	channel database.Channel,
) error {
	container, err := c.container(duplicateContainer)
	if err != nil {
		return err
	}

	_, err = container.DeleteItem(ctx, azcosmos.NewPartitionKeyString(string(channel)), key, nil)

	var azureErr *azcore.ResponseError
	if errors.As(err, &azureErr) && azureErr.StatusCode == 404 {
		return nil
	}

	return err
}
