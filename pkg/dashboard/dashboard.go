package dashboard

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

const pageSize = 100

// Client talks to the transaction dashboard API: it is the source of candidate
// transactions and the sink for timeline entries.
type Client struct {
	cl      *req.Client
	apiKey  string
	baseURL string
}

func NewClient(
	apiKey string,
	baseURL string,
	cl *req.Client,
) *Client {
	return &Client{
		cl:      cl,
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

func (c *Client) ListTransactions(ctx context.Context) ([]*database.Transaction, error) {
	var result []*database.Transaction

	for page := 1; ctx.Err() == nil; page++ {
		var apiResp GenericApiResponse[[]*database.Transaction]

		resp, err := c.cl.R().
			SetContext(ctx).
			SetBearerAuthToken(c.apiKey).
			SetSuccessResult(&apiResp).
			SetQueryParam("page", fmt.Sprint(page)).
			SetQueryParam("limit", fmt.Sprint(pageSize)).
			Get(c.baseURL + "/api/v1/transactions")
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if resp.IsErrorState() {
			return nil, errors.Newf("got error response: %s", resp.String())
		}

		result = append(result, apiResp.Data...)

		if len(apiResp.Data) == 0 || page >= apiResp.Meta.Pagination.TotalPages {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	zerolog.Ctx(ctx).Debug().Int("count", len(result)).Msg("fetched dashboard transactions")

	return result, nil
}

// ListCandidates fetches the live transaction list for matching.
func (c *Client) ListCandidates(ctx context.Context) ([]*database.Transaction, error) {
	return c.ListTransactions(ctx)
}

func (c *Client) AddTimelineEntry(ctx context.Context, entry *database.TimelineEntry) error {
	resp, err := c.cl.R().
		SetContext(ctx).
		SetBearerAuthToken(c.apiKey).
		SetBody(entry).
		Post(fmt.Sprintf("%s/api/v1/transactions/%s/timeline", c.baseURL, url.PathEscape(entry.TransactionID)))
	if err != nil {
		return errors.WithStack(err)
	}

	if resp.IsErrorState() {
		return errors.Newf("got error response: %s", resp.String())
	}

	return nil
}
