package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_application_statusDashboard(t *testing.T) {
	t.Parallel()
	server := startTestServer(t, "ok")
	ctx := context.Background()

	doc, err := server.Client().GetDoc(ctx, "/status")
	require.NoError(t, err)
	require.Contains(t, doc.Text(), "Injury reports (0)")
	require.Contains(t, doc.Text(), "Abuse reports (0)")
	require.Contains(t, doc.Text(), "No injury reports yet.")
	require.Contains(t, doc.Text(), "No abuse reports yet.")

	_, err = server.Client().SubmitForm(ctx, "/report/injury", "/report/injury", injuryFormValues())
	require.NoError(t, err)
	_, err = server.Client().SubmitForm(ctx, "/report/injury", "/report/injury", injuryFormValues())
	require.NoError(t, err)
	_, err = server.Client().SubmitForm(ctx, "/report/abuse", "/report/abuse", abuseFormValues())
	require.NoError(t, err)

	doc, err = server.Client().GetDoc(ctx, "/status")
	require.NoError(t, err)
	require.Contains(t, doc.Text(), "Injury reports (2)")
	require.Contains(t, doc.Text(), "Abuse reports (1)")
	require.Equal(t, 3, doc.Find(".case-card").Length())
	require.Contains(t, doc.Find(".case-card").First().Text(), "INJ1001")

	t.Run("a fresh session sees an empty dashboard", func(t *testing.T) {
		fresh := startTestServer(t, "ok")
		doc, err := fresh.Client().GetDoc(ctx, "/status")
		require.NoError(t, err)
		require.Contains(t, doc.Text(), "Injury reports (0)")
	})
}
