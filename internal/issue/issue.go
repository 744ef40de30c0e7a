// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"errors"
	"io/fs"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"

	"github.com/creddock/creddock/internal/container"
	"github.com/creddock/creddock/internal/credentials"
)

const (
	ContainerEngineNotFoundId Id = iota + 1
	CredentialsNotFoundId
	HostNotSupportedId
	HomeNotSetId
	BuildFailedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is Markdown text rendered for the user.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a catalog entry describing a failure mode and how to fix it.
	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		causes   []error // sentinels this entry explains, matched with errors.Is
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the Markdown message with the given glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- " + string(link) + "\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	containerEngineNotFoundIssue = &Issue{
		id: ContainerEngineNotFoundId,
		mdMsg: `
# Container engine not found!

creddock shells out to a container engine CLI to build and run your image,
but the selected engine is not on your PATH.

## Things you can try:
- Install Docker: https://docs.docker.com/get-docker/
- Or install Podman and select it:
~~~
$ creddock --engine podman --project my-project -c .
~~~
- Check that the binary is reachable:
~~~
$ which docker
~~~`,
		docLinks: []HttpLink{"https://docs.docker.com/engine/install/"},
		causes:   []error{container.ErrEngineNotAvailable},
	}

	credentialsNotFoundIssue = &Issue{
		id: CredentialsNotFoundId,
		mdMsg: `
# Credentials file not found!

The application default credentials file could not be resolved on the host.

## Things you can try:
- Create user credentials with gcloud:
~~~
$ gcloud auth application-default login
~~~
- Or point creddock at an existing file:
~~~
$ creddock --adc ./service-account.json --project my-project -c .
~~~`,
		docLinks: []HttpLink{"https://cloud.google.com/docs/authentication/application-default-credentials"},
		causes:   []error{fs.ErrNotExist},
	}

	hostNotSupportedIssue = &Issue{
		id: HostNotSupportedId,
		mdMsg: `
# Host not supported!

creddock only knows the default credentials location on unix-like systems and Windows.

## Things you can try:
- Pass the credentials path explicitly with ` + "`--adc <path>`",
		causes: []error{credentials.ErrUnsupportedOS},
	}

	homeNotSetIssue = &Issue{
		id: HomeNotSetId,
		mdMsg: `
# Home directory unknown!

The default credentials location is derived from ` + "`$HOME`" + ` (unix) or
` + "`%APPDATA%`" + ` (Windows), and the variable is not set.

## Things you can try:
- Export the variable in your shell
- Or pass the credentials path explicitly with ` + "`--adc <path>`",
		causes: []error{credentials.ErrEnvNotSet},
	}

	buildFailedIssue = &Issue{
		id: BuildFailedId,
		mdMsg: `
# Image build failed!

The engine's own output is printed above.

## Things you can try:
- Check that the build context directory exists and contains a Dockerfile
- Build manually to iterate faster:
~~~
$ docker build <context>
~~~`,
		causes: []error{container.ErrBuildFailed},
	}

	issues = map[Id]*Issue{
		containerEngineNotFoundIssue.Id(): containerEngineNotFoundIssue,
		credentialsNotFoundIssue.Id():     credentialsNotFoundIssue,
		hostNotSupportedIssue.Id():        hostNotSupportedIssue,
		homeNotSetIssue.Id():              homeNotSetIssue,
		buildFailedIssue.Id():             buildFailedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return values
}

// ForError returns the first entry, in id order, that explains err, or nil.
func ForError(err error) *Issue {
	if err == nil {
		return nil
	}
	for _, iss := range Values() {
		for _, cause := range iss.causes {
			if errors.Is(err, cause) {
				return iss
			}
		}
	}
	return nil
}

func Get(id Id) *Issue {
	return issues[id]
}
