package lower

import "sable/internal/ast"

// withLoopScope lowers f with n as the innermost loop. Entering a loop
// leaves any enclosing loop condition.
func withLoopScope[T any](lo *Lowerer, n ast.NodeID, f func() T) T {
	wasCond := lo.inLoopCondition
	lo.inLoopCondition = false

	depth := len(lo.loopScopes)
	lo.loopScopes = append(lo.loopScopes, n)
	v := f()
	if len(lo.loopScopes) != depth+1 {
		bug("loop scopes unbalanced under %s", n)
	}
	lo.loopScopes = lo.loopScopes[:depth]

	lo.inLoopCondition = wasCond
	return v
}

// withCatchScope lowers f with n as the innermost catch block, the
// target a failed unwrap breaks to.
func withCatchScope[T any](lo *Lowerer, n ast.NodeID, f func() T) T {
	depth := len(lo.catchScopes)
	lo.catchScopes = append(lo.catchScopes, n)
	v := f()
	if len(lo.catchScopes) != depth+1 {
		bug("catch scopes unbalanced under %s", n)
	}
	lo.catchScopes = lo.catchScopes[:depth]
	return v
}

// withLoopCondition marks f as a loop condition, where an unlabeled
// break or continue is ambiguous and rejected.
func withLoopCondition[T any](lo *Lowerer, f func() T) T {
	wasCond := lo.inLoopCondition
	lo.inLoopCondition = true
	v := f()
	lo.inLoopCondition = wasCond
	return v
}

// withNewScopes lowers f in a fresh control context: closures and item
// bodies do not see enclosing loops or catch blocks.
func withNewScopes[T any](lo *Lowerer, f func() T) T {
	wasCond := lo.inLoopCondition
	lo.inLoopCondition = false
	loops := lo.loopScopes
	catches := lo.catchScopes
	lo.loopScopes = nil
	lo.catchScopes = nil

	v := f()

	if len(lo.loopScopes) != 0 || len(lo.catchScopes) != 0 {
		bug("scopes leaked out of a fresh control context")
	}
	lo.loopScopes = loops
	lo.catchScopes = catches
	lo.inLoopCondition = wasCond
	return v
}
