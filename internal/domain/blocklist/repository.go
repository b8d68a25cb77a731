package blocklist

import "context"

type Repository interface {
	Load(ctx context.Context) (List, error)
}
