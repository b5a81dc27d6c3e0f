package db

import (
	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/model"
	"github.com/pkg/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// ErrCatalogDisabled is returned when no catalog endpoint is configured.
var ErrCatalogDisabled = errors.New("song catalog not configured")

// Catalog looks up song metadata (artist, copyright, CCLI number) keyed by
// song file name.
type Catalog struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewCatalog(client dynamodbiface.DynamoDBAPI, table string) *Catalog {
	return &Catalog{client: client, table: table}
}

// Connect builds a catalog from the environment.
func Connect() (*Catalog, error) {
	endpoint := constants.GetCatalogEndpoint()
	if endpoint == "" {
		return nil, ErrCatalogDisabled
	}
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetCatalogRegion()),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a DynamoDB session")
	}
	return NewCatalog(dynamodb.New(sess), constants.GetCatalogTable()), nil
}

func str(v *dynamodb.AttributeValue) string {
	if v == nil || v.S == nil {
		return ""
	}
	return *v.S
}

// GetSongMetadatas returns metadata for the filenames the catalog knows.
// Requests are batched; keys the service leaves unprocessed are retried.
func (c *Catalog) GetSongMetadatas(filenames []string) (map[string]model.SongMetadata, error) {
	res := make(map[string]model.SongMetadata)

	for start := 0; start < len(filenames); start += constants.CatalogBatchSize {
		end := start + constants.CatalogBatchSize
		if end > len(filenames) {
			end = len(filenames)
		}

		var keys []map[string]*dynamodb.AttributeValue
		for _, filename := range filenames[start:end] {
			keys = append(keys, map[string]*dynamodb.AttributeValue{
				"PK": {S: aws.String(filename)},
			})
		}

		input := &dynamodb.BatchGetItemInput{
			RequestItems: map[string]*dynamodb.KeysAndAttributes{
				c.table: {Keys: keys},
			},
		}
		for input != nil {
			out, err := c.client.BatchGetItem(input)
			if err != nil {
				return res, errors.Wrap(err, "catalog lookup failed")
			}
			for _, v := range out.Responses[c.table] {
				res[str(v["PK"])] = model.SongMetadata{
					Artist:    str(v["Artist"]),
					Title:     str(v["Title"]),
					Copyright: str(v["Copyright"]),
					CCLI:      str(v["CCLI"]),
				}
			}
			input = nil
			if len(out.UnprocessedKeys) > 0 {
				input = &dynamodb.BatchGetItemInput{RequestItems: out.UnprocessedKeys}
			}
		}
	}

	return res, nil
}
