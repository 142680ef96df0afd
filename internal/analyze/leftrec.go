package analyze

import (
	"sort"

	"github.com/MatthieuDartiailh/pegen/internal/ast"
	"github.com/MatthieuDartiailh/pegen/internal/pegerrors"
	"github.com/MatthieuDartiailh/pegen/internal/util"
)

// graph is the adjacency list of spec.md §4.3 Pass 2: edge A -> B
// exists iff B is in initial_names(A.rhs). Rule names absent from the
// map have no outgoing edges.
type graph map[string]util.StringSet

func buildGraph(g *ast.Grammar, tc ast.TokenClassifier) graph {
	adj := graph{}
	for _, rule := range g.Rules() {
		adj[rule.Name] = ast.RhsInitialNames(rule.Rhs, g, tc)
	}
	return adj
}

// tarjanSCC returns the strongly connected components of adj, each as a
// set of rule names, in no particular order.
func tarjanSCC(adj graph, order []string) [][]string {
	index := 0
	indices := map[string]int{}
	lowlink := map[string]int{}
	onStack := map[string]bool{}
	var stack []string
	var sccs [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		neighbors := adj[v].Elements()
		sort.Strings(neighbors)
		for _, w := range neighbors {
			if _, ok := indices[w]; !ok {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, v := range order {
		if _, ok := indices[v]; !ok {
			strongconnect(v)
		}
	}
	return sccs
}

// hasSelfEdge reports whether v has an edge to itself.
func hasSelfEdge(adj graph, v string) bool {
	return adj[v].Has(v)
}

// chooseLeader implements spec.md §4.3's leader-election algorithm: a
// candidate L is valid iff removing every edge that targets L from the
// SCC leaves a DAG over the remaining nodes. Candidates are tried in
// lexicographic order so the choice is reproducible, per spec.md §9's
// open question.
func chooseLeader(adj graph, scc []string) (string, bool) {
	candidates := append([]string{}, scc...)
	sort.Strings(candidates)

	sccSet := util.StringSetOf(scc)

	for _, candidate := range candidates {
		if isDagExcludingEdgesInto(adj, sccSet, candidate) {
			return candidate, true
		}
	}
	return "", false
}

// isDagExcludingEdgesInto reports whether the subgraph induced by
// members, with every edge whose target is `leader` deleted, is acyclic.
func isDagExcludingEdgesInto(adj graph, members util.StringSet, leader string) bool {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := map[string]int{}

	var visit func(v string) bool
	visit = func(v string) bool {
		state[v] = visiting
		neighbors := adj[v].Elements()
		sort.Strings(neighbors)
		for _, w := range neighbors {
			if !members.Has(w) || w == leader {
				continue // edge leaves the SCC, or targets the leader: allowed
			}
			switch state[w] {
			case visiting:
				return false // back edge: cycle
			case unvisited:
				if !visit(w) {
					return false
				}
			}
		}
		state[v] = done
		return true
	}

	for _, v := range members.Elements() {
		if v == leader {
			continue
		}
		if state[v] == unvisited {
			if !visit(v) {
				return false
			}
		}
	}
	return true
}

// computeLeftRecursion runs spec.md §4.3 Pass 2: build the initial-names
// graph, find its SCCs, mark every rule on a cycle left-recursive, and
// elect one leader per left-recursive SCC. It fails with NoLeader if any
// such SCC admits none.
func computeLeftRecursion(g *ast.Grammar, tc ast.TokenClassifier) error {
	order := make([]string, 0)
	for _, rule := range g.Rules() {
		order = append(order, rule.Name)
	}

	adj := buildGraph(g, tc)
	sccs := tarjanSCC(adj, order)

	for _, scc := range sccs {
		leftRecursive := len(scc) > 1
		if len(scc) == 1 && hasSelfEdge(adj, scc[0]) {
			leftRecursive = true
		}

		for _, name := range scc {
			rule, ok := g.Rule(name)
			if !ok {
				// a dangling reference: no rule to annotate
				continue
			}
			rule.LeftRecursive = leftRecursive
			rule.Leader = false
			g.SetRule(rule)
		}

		if !leftRecursive {
			continue
		}

		leader, ok := chooseLeader(adj, scc)
		if !ok {
			sort.Strings(scc)
			return pegerrors.NewGrammarError(pegerrors.NoLeader, scc[0],
				"strongly connected component "+util.StringSetOf(scc).StringOrdered()+" admits no valid leader")
		}

		rule, _ := g.Rule(leader)
		rule.Leader = true
		g.SetRule(rule)
	}

	return nil
}
