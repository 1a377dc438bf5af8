package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/guiyumin/linkparse/internal/config"
	"github.com/guiyumin/linkparse/internal/webdav"
	"github.com/rs/zerolog"
)

// Opener resolves input names to readers. "-" is stdin, "remote:/path" is a
// file on a configured WebDAV server, webdav://host/path is an ad-hoc server
// and anything else is a local file.
type Opener struct {
	Config *config.Config
	Stdin  io.Reader
	Retry  RetryOptions
	Logger zerolog.Logger
}

// NewOpener creates an Opener reading stdin from os.Stdin
func NewOpener(cfg *config.Config, logger zerolog.Logger) *Opener {
	return &Opener{
		Config: cfg,
		Stdin:  os.Stdin,
		Retry:  DefaultRetryOptions(),
		Logger: logger,
	}
}

// Open returns a reader for name; the caller closes it
func (o *Opener) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	switch {
	case name == "-":
		return io.NopCloser(o.Stdin), nil
	case webdav.IsWebDAVURL(name):
		clientURL, filePath, err := webdav.SplitURL(name)
		if err != nil {
			return nil, err
		}
		client, err := webdav.NewClient(clientURL)
		if err != nil {
			return nil, err
		}
		return o.openRemote(ctx, client, filePath)
	case webdav.IsRemotePath(name):
		serverName, filePath, err := webdav.ParseRemotePath(name)
		if err != nil {
			return nil, err
		}
		server := o.Config.GetWebDAVServer(serverName)
		if server == nil {
			return nil, fmt.Errorf("unknown WebDAV remote %q (add it with: linkparse config webdav add %s)", serverName, serverName)
		}
		client, err := webdav.NewClientFromConfig(server)
		if err != nil {
			return nil, err
		}
		return o.openRemote(ctx, client, filePath)
	default:
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		return f, nil
	}
}

// ReadURLs opens name and extracts its URLs
func (o *Opener) ReadURLs(ctx context.Context, name string, format Format) ([]string, error) {
	rc, err := o.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	urls, err := Read(rc, name, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	o.Logger.Debug().Str("input", name).Int("urls", len(urls)).Msg("input read")
	return urls, nil
}

func (o *Opener) openRemote(ctx context.Context, client *webdav.Client, filePath string) (io.ReadCloser, error) {
	attempt := 0
	return retry(ctx, o.Retry, func() (io.ReadCloser, error) {
		attempt++
		rc, err := client.Open(ctx, filePath)
		if err != nil {
			o.Logger.Debug().Err(err).
				Int("attempt", attempt).
				Str("server", client.BaseURL()).
				Str("path", filePath).
				Msg("remote open failed")
		}
		return rc, err
	})
}
