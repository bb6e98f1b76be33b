package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_application_home(t *testing.T) {
	t.Parallel()
	server := startTestServer(t, "ok")
	ctx := context.Background()

	doc, err := server.Client().GetDoc(ctx, "/")
	require.NoError(t, err)

	require.Equal(t, "Rescue & Protect Animals in Need", doc.Find("h1").Text())
	require.Equal(t, 1, doc.Find("main a[href='/report/injury']").Length())
	require.Equal(t, 1, doc.Find("main a[href='/report/abuse']").Length())
	require.Equal(t, 1, doc.Find("main a[href='/status']").Length())
	require.Equal(t, 1, doc.Find("main a[href='/chat']").Length())
}

func Test_application_home_unknownPathFallsBack(t *testing.T) {
	t.Parallel()
	server := startTestServer(t, "ok")
	ctx := context.Background()

	// Unrecognised paths render the home screen instead of an error page.
	doc, err := server.Client().GetDoc(ctx, "/nonexistent")
	require.NoError(t, err)
	require.Equal(t, "Rescue & Protect Animals in Need", doc.Find("h1").Text())
}
