package constants

// AnnotationSafeToEvict tells the cluster autoscaler whether it may evict the
// pod when scaling a node down.
const AnnotationSafeToEvict = "cluster-autoscaler.kubernetes.io/safe-to-evict"
