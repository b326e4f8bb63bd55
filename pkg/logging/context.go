package logging

import "context"

type detailsKey struct{}

// ContextWith returns a context that carries the given details.
// Every entry logged with the returned context includes them,
// after the details of the parent contexts.
func ContextWith(ctx context.Context, ds ...Detail) context.Context {
	if len(ds) == 0 {
		return ctx
	}
	inherited := detailsFrom(ctx)
	details := make([]Detail, 0, len(inherited)+len(ds))
	details = append(details, inherited...)
	details = append(details, ds...)
	return context.WithValue(ctx, detailsKey{}, details)
}

func detailsFrom(ctx context.Context) []Detail {
	if ctx == nil {
		return nil
	}
	ds, _ := ctx.Value(detailsKey{}).([]Detail)
	return ds
}
