package metrics

const Namespace = "roster"
