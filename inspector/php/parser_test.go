package php_test

import (
	"context"
	"errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/phpda/inspector/php"
	"testing"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		description string
		source      string
		wantErr     bool
		wantLine    int
	}{
		{
			description: "valid class",
			source: `<?php
namespace App;

class User {}
`,
		},
		{
			description: "syntax error",
			source: `<?php
namespace App;

class User {
    public function x( {
}
`,
			wantErr: true,
		},
		{
			description: "empty file",
			source:      "",
		},
	}

	parser := php.NewParser()
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			tree, err := parser.Parse(context.Background(), "unit.php", []byte(tc.source))
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, php.ErrSyntax))
				var parseErr *php.ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.Equal(t, "unit.php", parseErr.Unit)
				assert.Contains(t, parseErr.Error(), "unit.php")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "unit.php", tree.Unit)
			assert.NotNil(t, tree.Root())
		})
	}
}

func classifyAll(t *testing.T, source string) []*php.Node {
	t.Helper()
	tree, err := php.NewParser().Parse(context.Background(), "unit.php", []byte(source))
	require.NoError(t, err)
	var nodes []*php.Node
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if classified := php.Classify(node, tree.Source); classified.Kind != php.KindOther {
			nodes = append(nodes, classified)
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}
	walk(tree.Root())
	return nodes
}

func TestClassify(t *testing.T) {
	nodes := classifyAll(t, `<?php
namespace App\Service;

use Psr\Log\LoggerInterface;
use App\Model\User as Member;

class Mailer extends \Base\Mailer implements Contract\Sender
{
    public function send(Member $member): void
    {
        $message = new Message($_POST['body']);
        require_once 'lib/helpers.php';
        include $path;
    }
}
`)
	var (
		namespaces, uses, names, variables, includes []*php.Node
	)
	for _, node := range nodes {
		switch node.Kind {
		case php.KindNamespace:
			namespaces = append(namespaces, node)
		case php.KindUse:
			uses = append(uses, node)
		case php.KindName:
			names = append(names, node)
		case php.KindVariable:
			variables = append(variables, node)
		case php.KindInclude:
			includes = append(includes, node)
		}
	}

	require.Len(t, namespaces, 1)
	assert.Equal(t, `App\Service`, namespaces[0].Name.String())

	require.Len(t, uses, 2)
	assert.Equal(t, `Psr\Log\LoggerInterface`, uses[0].Name.String())
	assert.Equal(t, "", uses[0].Alias)
	assert.Equal(t, php.UseClass, uses[0].UseKind)
	assert.Equal(t, `App\Model\User`, uses[1].Name.String())
	assert.Equal(t, "Member", uses[1].Alias)

	var texts []string
	for _, node := range names {
		texts = append(texts, node.Text)
	}
	assert.Equal(t, []string{`\Base\Mailer`, `Contract\Sender`, "Member", "Message"}, texts)
	assert.True(t, names[0].FullyQualified)
	assert.False(t, names[1].FullyQualified)

	var superglobal bool
	for _, node := range variables {
		if node.Variable == "_POST" {
			superglobal = true
		}
	}
	assert.True(t, superglobal)

	require.Len(t, includes, 2)
	assert.Equal(t, "require_once", includes[0].Include.Operator)
	assert.True(t, includes[0].Include.Literal)
	assert.Equal(t, "lib/helpers.php", includes[0].Include.Path)
	assert.Equal(t, "include", includes[1].Include.Operator)
	assert.False(t, includes[1].Include.Literal)
	assert.Equal(t, "$path", includes[1].Include.Path)
}

func TestClassify_References(t *testing.T) {
	nodes := classifyAll(t, `<?php
if ($a instanceof Foo\Bar) {
    Registry::get();
    echo Status::ACTIVE;
}
try {
} catch (NotFound $e) {
}
`)
	var texts []string
	for _, node := range nodes {
		if node.Kind == php.KindName {
			texts = append(texts, node.Text)
		}
	}
	assert.Equal(t, []string{`Foo\Bar`, "Registry", "Status", "NotFound"}, texts)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "namespace", php.KindNamespace.String())
	assert.Equal(t, "use", php.KindUse.String())
	assert.Equal(t, "name", php.KindName.String())
	assert.Equal(t, "variable", php.KindVariable.String())
	assert.Equal(t, "include", php.KindInclude.String())
	assert.Equal(t, "other", php.KindOther.String())
}
